package middleware

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ferdiebergado/snaptools/internal/pkg/web"
)

// LogRequest logs one line per request after it is served. Server errors
// are logged at error level and client errors at warn. The request body is
// never logged since tool inputs may hold secrets.
func LogRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		writer, ok := w.(*SafeResponseWriter)
		if !ok {
			web.RespondInternalServerError(w, errors.New("LogRequest needs InjectWriter to run first"))
			return
		}

		status := writer.Status()
		attrs := []slog.Attr{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Int("bytes", writer.BytesWritten()),
			slog.Duration("duration", time.Since(start)),
			slog.String("ip", clientIP(r)),
		}
		if category, id := r.PathValue("category"), r.PathValue("tool"); id != "" {
			attrs = append(attrs, slog.String("tool", category+"/"+id))
		}
		if origin := r.Header.Get(HeaderOrigin); origin != "" {
			attrs = append(attrs, slog.String("origin", origin))
		}

		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		slog.LogAttrs(r.Context(), level, "request served", attrs...)
	})
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
