package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ferdiebergado/snaptools/internal/middleware"
	"github.com/ferdiebergado/snaptools/internal/pkg/web"
	"github.com/ferdiebergado/snaptools/internal/platform/validation"
)

func TestValidateInput(t *testing.T) {
	t.Parallel()

	const headerCalled = "X-Handler-Called"

	tests := []struct {
		name         string
		code         int
		payload      any
		valFunc      func(any) map[string]string
		body, called string
	}{
		{"Valid input", http.StatusOK,
			submission{Fields: map[string]string{"text": "a"}},
			func(_ any) map[string]string { return nil },
			"", "true"},
		{"Too many fields", http.StatusUnprocessableEntity,
			submission{Fields: map[string]string{"text": "a", "key": "b", "salt": "c"}},
			func(_ any) map[string]string {
				return map[string]string{"fields": "fields must contain at most 2 items"}
			},
			`{"message":"Invalid input.","errors":{"fields":"fields must contain at most 2 items"}}`, ""},
		{"Decoded as another type", http.StatusInternalServerError, struct{}{},
			func(_ any) map[string]string { return nil },
			`{"message":"An unexpected error occurred."}`, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set(headerCalled, "true")
				w.WriteHeader(http.StatusOK)
			})

			ctx := web.NewContextWithParams(context.Background(), tc.payload)
			req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/", http.NoBody)
			rec := httptest.NewRecorder()
			valdtr := &validation.StubValidator{ValidateStructFunc: tc.valFunc}
			middleware.ValidateInput[submission](valdtr)(handler).ServeHTTP(rec, req)

			if rec.Code != tc.code {
				t.Errorf("rec.Code = %d, want: %d", rec.Code, tc.code)
			}
			if got := rec.Header().Get(headerCalled); got != tc.called {
				t.Errorf("rec.Header().Get(%q) = %q, want: %q", headerCalled, got, tc.called)
			}
			if got := strings.TrimSuffix(rec.Body.String(), "\n"); got != tc.body {
				t.Errorf("rec.Body.String() = %q, want: %q", got, tc.body)
			}
		})
	}
}

func TestValidateInput_GoPlayground(t *testing.T) {
	t.Parallel()

	ctx := web.NewContextWithParams(context.Background(), submission{
		Fields: map[string]string{"text": "a", "key": "b", "salt": "c"},
	})
	req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/", http.NoBody)
	rec := httptest.NewRecorder()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware.ValidateInput[submission](validation.NewGoPlaygroundValidator())(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("rec.Code = %d, want: %d", rec.Code, http.StatusUnprocessableEntity)
	}
}
