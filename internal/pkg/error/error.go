// Package error classifies errors that cross package boundaries.
package error

import (
	"context"
	"errors"
)

// IsContextError reports whether err stems from a cancelled or expired
// context, however deeply it is wrapped.
func IsContextError(err error) bool {
	return ContextReason(err) != ""
}

// ContextReason names why a context ended, or returns "" when err is not a
// context error.
func ContextReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return ""
	}
}
