package error_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	errx "github.com/ferdiebergado/snaptools/internal/pkg/error"
)

func TestContextReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		reason string
	}{
		{"nil", nil, ""},
		{"canceled", context.Canceled, "cancelled"},
		{"deadline", context.DeadlineExceeded, "timed out"},
		{"wrapped deadline", fmt.Errorf("sha256 forward failed: %w", context.DeadlineExceeded), "timed out"},
		{"joined cancel", errors.Join(errors.New("superseded"), context.Canceled), "cancelled"},
		{"other", errors.New("boom"), ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := errx.ContextReason(tc.err); got != tc.reason {
				t.Errorf("ContextReason(%v) = %q, want: %q", tc.err, got, tc.reason)
			}
			if got, want := errx.IsContextError(tc.err), tc.reason != ""; got != want {
				t.Errorf("IsContextError(%v) = %v, want: %v", tc.err, got, want)
			}
		})
	}
}
