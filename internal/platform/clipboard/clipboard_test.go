package clipboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ferdiebergado/snaptools/internal/platform/clipboard"
	"github.com/ferdiebergado/snaptools/internal/transform"
)

func TestMemory_CopyPaste(t *testing.T) {
	t.Parallel()

	var cb clipboard.Memory
	ctx := context.Background()

	if err := cb.Copy(ctx, "098f6bcd4621d373cade4e832627b4f6"); err != nil {
		t.Fatalf("Copy() = %v, want: nil", err)
	}

	got, err := cb.Paste(ctx)
	if err != nil {
		t.Fatalf("Paste() = %v, want: nil", err)
	}
	if got != "098f6bcd4621d373cade4e832627b4f6" {
		t.Errorf("Paste() = %q, want: %q", got, "098f6bcd4621d373cade4e832627b4f6")
	}
}

func TestMemory_Denied(t *testing.T) {
	t.Parallel()

	cb := &clipboard.Memory{Denied: true}
	ctx := context.Background()

	err := cb.Copy(ctx, "x")
	if !errors.Is(err, transform.ErrClipboardDenied) {
		t.Errorf("Copy() = %v, want: %v", err, transform.ErrClipboardDenied)
	}
	if !errors.Is(err, clipboard.ErrDenied) {
		t.Errorf("Copy() = %v, want: %v", err, clipboard.ErrDenied)
	}

	_, err = cb.Paste(ctx)
	if got, want := transform.KindOf(err), transform.ClipboardDenied; got != want {
		t.Errorf("KindOf(Paste()) = %v, want: %v", got, want)
	}
}

func TestMemory_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var cb clipboard.Memory
	if err := cb.Copy(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("Copy(cancelled) = %v, want: %v", err, context.Canceled)
	}
	if _, err := cb.Paste(ctx); !errors.Is(err, transform.ErrClipboardDenied) {
		t.Errorf("Paste(cancelled) = %v, want: %v", err, transform.ErrClipboardDenied)
	}
}
