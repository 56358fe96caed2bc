// Package cli is the snaptools command line. Each subcommand mounts one tool
// through tool.Controller, the same way a screen would.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/ferdiebergado/snaptools/internal/platform/clipboard"
	"github.com/ferdiebergado/snaptools/internal/tool"
)

// State is everything a command touches outside its own flags. Tests swap
// the streams, the clipboard and the secret reader.
type State struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	StdinTTY  bool
	Service   tool.Service
	Clipboard clipboard.Bridge
	Notifier  tool.Notifier

	// ClipboardTimeout bounds each copy or paste. Zero means no bound.
	ClipboardTimeout time.Duration

	// ReadSecret reads one line without echo.
	ReadSecret func() (string, error)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewState wires the process streams and the system clipboard to svc.
func NewState(ctx context.Context, svc tool.Service, clipboardTimeout time.Duration, noColor bool) *State {
	stderrTTY := isTerminal(os.Stderr)
	return &State{
		Ctx:        ctx,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		StdinTTY:   isTerminal(os.Stdin),
		Service:    svc,
		Clipboard:  clipboard.System{},
		Notifier:   NewColorNotifier(os.Stderr, noColor || !stderrTTY),
		ReadSecret: readPassword(os.Stdin),

		ClipboardTimeout: clipboardTimeout,
	}
}

func readPassword(stdin *os.File) func() (string, error) {
	return func() (string, error) {
		secret, err := term.ReadPassword(int(stdin.Fd()))
		if err == nil {
			return string(secret), nil
		}

		// Terminals without pty emulation cannot turn echo off.
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read secret: %w", err)
		}
		return trimNewline(line), nil
	}
}
