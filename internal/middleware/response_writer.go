package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	errx "github.com/ferdiebergado/snaptools/internal/pkg/error"
)

const defaultStatus = http.StatusOK

// SafeResponseWriter drops writes once the request context is done and
// records the status and byte count for LogRequest.
//
//nolint:containedctx // writes are gated on the request context
type SafeResponseWriter struct {
	http.ResponseWriter
	ctx context.Context

	mu            sync.Mutex
	status        int
	headerWritten bool
	dropped       bool
	bytesSent     atomic.Int64
}

func NewSafeResponseWriter(ctx context.Context, w http.ResponseWriter) *SafeResponseWriter {
	return &SafeResponseWriter{
		ResponseWriter: w,
		ctx:            ctx,
		status:         defaultStatus,
	}
}

// InjectWriter wraps the response writer in a SafeResponseWriter bound to the
// request context. It must be the outermost middleware.
func InjectWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(NewSafeResponseWriter(r.Context(), w), r)
	})
}

// gone reports whether the client has stopped waiting. Must hold mu.
func (w *SafeResponseWriter) gone() bool {
	reason := errx.ContextReason(w.ctx.Err())
	if reason == "" {
		return false
	}
	if !w.dropped {
		w.dropped = true
		slog.Debug("dropping response", "reason", reason)
	}
	return true
}

func (w *SafeResponseWriter) WriteHeader(statusCode int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.headerWritten || w.gone() {
		return
	}

	w.ResponseWriter.WriteHeader(statusCode)
	w.status = statusCode
	w.headerWritten = true
}

func (w *SafeResponseWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	if w.gone() {
		w.mu.Unlock()
		return 0, nil
	}
	if !w.headerWritten {
		w.ResponseWriter.WriteHeader(defaultStatus)
		w.headerWritten = true
	}
	w.mu.Unlock()

	n, err := w.ResponseWriter.Write(b)
	w.bytesSent.Add(int64(n))
	return n, err
}

func (w *SafeResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *SafeResponseWriter) BytesWritten() int {
	return int(w.bytesSent.Load())
}
