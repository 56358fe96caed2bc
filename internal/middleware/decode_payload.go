package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ferdiebergado/snaptools/internal/pkg/message"
	"github.com/ferdiebergado/snaptools/internal/pkg/web"
)

const unknownFieldPrefix = "json: unknown field "

// DecodePayload decodes a single JSON object of at most bodySize bytes into T
// and stores it in the request context for ParamsFromContext.
func DecodePayload[T any](bodySize int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, bodySize)
			decoder := json.NewDecoder(r.Body)
			decoder.DisallowUnknownFields()

			var payload T
			if err := decoder.Decode(&payload); err != nil {
				respondDecodeError(w, err)
				return
			}
			if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
				web.RespondBadRequest(w, errors.New("trailing data after payload"), message.InvalidInput, nil)
				return
			}

			slog.Debug("payload decoded", "type", fmt.Sprintf("%T", payload))
			next.ServeHTTP(w, r.WithContext(web.NewContextWithParams(r.Context(), payload)))
		})
	}
}

func respondDecodeError(w http.ResponseWriter, err error) {
	var (
		tooLarge  *http.MaxBytesError
		wrongType *json.UnmarshalTypeError
		syntax    *json.SyntaxError
	)
	switch {
	case errors.As(err, &tooLarge):
		web.RespondRequestEntityTooLarge(w, err, message.InvalidInput, nil)
	case errors.As(err, &wrongType):
		web.RespondBadRequest(w, err, message.InvalidInput, map[string]string{"field": wrongType.Field})
	case errors.As(err, &syntax):
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
	default:
		if name, ok := strings.CutPrefix(err.Error(), unknownFieldPrefix); ok {
			web.RespondUnprocessableEntity(w, err, message.UnknownField, map[string]string{"field": strings.Trim(name, `"`)})
			return
		}
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
	}
}
