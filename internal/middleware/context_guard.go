package middleware

import (
	"log/slog"
	"net/http"

	errx "github.com/ferdiebergado/snaptools/internal/pkg/error"
	"github.com/ferdiebergado/snaptools/internal/pkg/message"
	"github.com/ferdiebergado/snaptools/internal/pkg/web"
)

// ContextGuard answers 408 without running the tool when the client has
// already gone or the server is draining.
func ContextGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := r.Context().Err()
		if err == nil {
			next.ServeHTTP(w, r)
			return
		}

		slog.Info("skipping request", "path", r.URL.Path, "reason", errx.ContextReason(err))
		web.RespondRequestTimeout(w, err, message.RequestTimeout, nil)
	})
}
