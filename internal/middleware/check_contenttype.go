package middleware

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/ferdiebergado/snaptools/internal/pkg/message"
	"github.com/ferdiebergado/snaptools/internal/pkg/web"
)

// CheckContentType rejects tool submissions that are not JSON. Parameters
// such as charset are allowed. Bodyless methods pass through.
func CheckContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !carriesBody(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get(web.HeaderContentType)
		mediaType, _, err := mime.ParseMediaType(header)
		if err != nil || mediaType != web.MimeJSON {
			web.RespondUnsupportedMediaType(w, fmt.Errorf("content type %q is not %s", header, web.MimeJSON), message.InvalidInput, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func carriesBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}
