package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/snaptools/internal/pkg/message"
	"github.com/ferdiebergado/snaptools/internal/pkg/web"
	"github.com/ferdiebergado/snaptools/internal/platform/validation"
)

var errInvalidPayload = errors.New("payload failed validation")

// ValidateInput checks the payload stored by DecodePayload against its
// validate tags. It must run after DecodePayload[T] with the same T.
func ValidateInput[T any](validator validation.Validator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload, err := web.ParamsFromContext[T](r.Context())
			if err != nil {
				web.RespondInternalServerError(w, fmt.Errorf("validate input: %w", err))
				return
			}

			if errs := validator.ValidateStruct(payload); len(errs) > 0 {
				slog.Debug("payload rejected", "fields", len(errs))
				web.RespondUnprocessableEntity(w, errInvalidPayload, message.InvalidInput, errs)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
