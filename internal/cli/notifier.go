package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/ferdiebergado/snaptools/internal/tool"
)

// ColorNotifier prints notifications as one coloured line each.
type ColorNotifier struct {
	mu      sync.Mutex
	w       io.Writer
	success *color.Color
	failure *color.Color
	detail  *color.Color
}

var _ tool.Notifier = (*ColorNotifier)(nil)

func NewColorNotifier(w io.Writer, noColor bool) *ColorNotifier {
	n := &ColorNotifier{
		w:       w,
		success: color.New(color.FgGreen, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
		detail:  color.New(color.Faint),
	}
	if noColor {
		n.success.DisableColor()
		n.failure.DisableColor()
		n.detail.DisableColor()
	}
	return n
}

func (n *ColorNotifier) Notify(level tool.Level, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	head := n.success
	if level == tool.LevelError {
		head = n.failure
	}

	_, _ = head.Fprint(n.w, title)
	if message != "" {
		_, _ = fmt.Fprint(n.w, ": ")
		_, _ = n.detail.Fprint(n.w, message)
	}
	_, _ = fmt.Fprintln(n.w)
}
