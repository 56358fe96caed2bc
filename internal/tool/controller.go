package tool

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/ferdiebergado/snaptools/internal/catalog"
	errx "github.com/ferdiebergado/snaptools/internal/pkg/error"
	"github.com/ferdiebergado/snaptools/internal/platform/clipboard"
	"github.com/ferdiebergado/snaptools/internal/transform"
)

// Verification outcomes stored as the output value.
const (
	Match    = "match"
	Mismatch = "mismatch"
)

var ErrClosed = errors.New("tool is closed")

// Outcome is what one Run or Verify produced. Applied is false when a later
// call superseded it or the controller was closed, in which case the output
// was left alone and nobody was notified.
type Outcome struct {
	Seq     uint64
	Result  transform.Result
	Applied bool
}

// Controller is one mounted tool. Runs are sequenced so that only the latest
// call's result reaches the output.
type Controller struct {
	svc       Service
	tool      *catalog.Tool
	notifier  Notifier
	clipboard clipboard.Bridge

	mu       sync.Mutex
	seq      uint64
	cancel   context.CancelFunc
	inflight int
	closed   bool
	output   transform.Result
}

func NewController(svc Service, t *catalog.Tool, n Notifier, cb clipboard.Bridge) *Controller {
	return &Controller{
		svc:       svc,
		tool:      t,
		notifier:  n,
		clipboard: cb,
	}
}

func (c *Controller) Tool() *catalog.Tool {
	return c.tool
}

// Run transforms in and applies the result if no later call has started.
// Starting a run cancels the one in flight.
func (c *Controller) Run(ctx context.Context, dir transform.Direction, in Input) (Outcome, error) {
	return c.do(ctx, "Done", func(ctx context.Context) (string, error) {
		return c.svc.Transform(ctx, string(c.tool.Category), c.tool.ID, dir, in)
	})
}

// Verify compares in.Input with in.Digest. The output value is Match or
// Mismatch.
func (c *Controller) Verify(ctx context.Context, in VerifyInput) (Outcome, error) {
	out, err := c.do(ctx, "Verified", func(ctx context.Context) (string, error) {
		res, err := c.svc.Verify(ctx, string(c.tool.Category), c.tool.ID, in)
		if err != nil {
			return "", err
		}
		if res.Matches {
			return Match, nil
		}
		return Mismatch, nil
	})
	return out, err
}

func (c *Controller) do(ctx context.Context, successTitle string, fn func(context.Context) (string, error)) (Outcome, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Outcome{}, ErrClosed
	}

	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.inflight++
	c.mu.Unlock()

	value, err := fn(runCtx)
	cancel()
	if errx.IsContextError(err) {
		slog.Debug("run abandoned", "tool", c.tool.ID, "seq", seq, "reason", errx.ContextReason(err))
	}
	res := transform.NewResult(value, err)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.inflight--
	if c.closed || seq != c.seq {
		slog.Debug("discarding stale result", "tool", c.tool.ID, "seq", seq, "latest", c.seq)
		return Outcome{Seq: seq, Result: res}, nil
	}

	c.cancel = nil
	c.output = res
	c.notify(res, successTitle)
	return Outcome{Seq: seq, Result: res, Applied: true}, nil
}

func (c *Controller) notify(res transform.Result, successTitle string) {
	if c.notifier == nil {
		return
	}

	if res.OK && res.Value == Mismatch {
		c.notifier.Notify(LevelError, "No match", "The input does not produce the given digest.")
		return
	}
	NotifyResult(c.notifier, res, successTitle)
}

// Busy reports whether a call is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0
}

// Output returns the latest applied result.
func (c *Controller) Output() transform.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.output
}

// CopyOutput puts the current output value on the clipboard. A failure is
// notified and returned but leaves the output intact.
func (c *Controller) CopyOutput(ctx context.Context) error {
	out := c.Output()
	if !out.OK || out.Value == "" {
		return &transform.Error{Kind: transform.MissingInput, Message: "nothing to copy"}
	}
	if err := c.clipboardOrDenied(); err != nil {
		return err
	}

	if err := c.clipboard.Copy(ctx, out.Value); err != nil {
		c.notifyErr(err)
		return err
	}
	if c.notifier != nil {
		c.notifier.Notify(LevelSuccess, "Copied to clipboard", "")
	}
	return nil
}

// Paste reads the clipboard for use as an input value.
func (c *Controller) Paste(ctx context.Context) (string, error) {
	if err := c.clipboardOrDenied(); err != nil {
		return "", err
	}

	text, err := c.clipboard.Paste(ctx)
	if err != nil {
		c.notifyErr(err)
		return "", err
	}
	return text, nil
}

func (c *Controller) clipboardOrDenied() error {
	if c.clipboard != nil {
		return nil
	}
	err := &transform.Error{Kind: transform.ClipboardDenied, Message: "no clipboard configured"}
	c.notifyErr(err)
	return err
}

func (c *Controller) notifyErr(err error) {
	if c.notifier != nil {
		NotifyResult(c.notifier, transform.NewResult("", err), "")
	}
}

// Close cancels the call in flight. Results that arrive afterwards are
// discarded and further calls fail with ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
