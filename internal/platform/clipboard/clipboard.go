// Package clipboard copies tool output to, and pastes tool input from, the
// system clipboard.
package clipboard

import (
	"context"
	"errors"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/ferdiebergado/snaptools/internal/transform"
)

// Bridge is the clipboard side channel. Failures are ClipboardDenied errors
// and never affect the transform that produced the text.
type Bridge interface {
	Copy(ctx context.Context, text string) error
	Paste(ctx context.Context) (string, error)
}

var ErrUnsupported = errors.New("no clipboard utility available")

func denied(op string, err error) error {
	return &transform.Error{
		Kind:    transform.ClipboardDenied,
		Message: op + " failed",
		Err:     err,
	}
}

// System uses the OS clipboard through xclip, xsel, wl-clipboard, pbcopy or
// the Windows API.
type System struct{}

var _ Bridge = System{}

func (System) Copy(ctx context.Context, text string) error {
	if clipboard.Unsupported {
		return denied("copy", ErrUnsupported)
	}

	_, err := transform.Await(ctx, func() (struct{}, error) {
		return struct{}{}, clipboard.WriteAll(text)
	})
	if err != nil {
		return denied("copy", err)
	}
	return nil
}

func (System) Paste(ctx context.Context) (string, error) {
	if clipboard.Unsupported {
		return "", denied("paste", ErrUnsupported)
	}

	text, err := transform.Await(ctx, clipboard.ReadAll)
	if err != nil {
		return "", denied("paste", err)
	}
	return text, nil
}

// Memory is a process-local clipboard. Set Denied to simulate a refused
// permission.
type Memory struct {
	mu     sync.Mutex
	text   string
	Denied bool
}

var _ Bridge = (*Memory)(nil)

var ErrDenied = errors.New("clipboard permission denied")

func (m *Memory) Copy(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return denied("copy", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Denied {
		return denied("copy", ErrDenied)
	}
	m.text = text
	return nil
}

func (m *Memory) Paste(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", denied("paste", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Denied {
		return "", denied("paste", ErrDenied)
	}
	return m.text, nil
}
