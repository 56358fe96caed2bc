package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/snaptools/internal/pkg/web"
)

func TestRespond(t *testing.T) {
	t.Parallel()

	reason := errors.New("boom")

	tests := []struct {
		name    string
		respond func(w http.ResponseWriter)
		code    int
		message string
		errors  map[string]any
	}{
		{"ok", func(w http.ResponseWriter) {
			msg := "done"
			web.RespondOK(w, &msg, &struct{}{})
		}, http.StatusOK, "done", nil},
		{"created", func(w http.ResponseWriter) {
			web.RespondCreated[struct{}](w, nil, nil)
		}, http.StatusCreated, "", nil},
		{"bad request", func(w http.ResponseWriter) {
			web.RespondBadRequest(w, reason, "Invalid input.", nil)
		}, http.StatusBadRequest, "Invalid input.", nil},
		{"unprocessable", func(w http.ResponseWriter) {
			web.RespondUnprocessableEntity(w, reason, "Missing input", map[string]string{"text": "text is required"})
		}, http.StatusUnprocessableEntity, "Missing input", map[string]any{"text": "text is required"}},
		{"not found", func(w http.ResponseWriter) {
			web.RespondNotFound(w, reason, "Unsupported tool", nil)
		}, http.StatusNotFound, "Unsupported tool", nil},
		{"timeout", func(w http.ResponseWriter) {
			web.RespondRequestTimeout(w, reason, "Request cancelled or timeout.", nil)
		}, http.StatusRequestTimeout, "Request cancelled or timeout.", nil},
		{"too large", func(w http.ResponseWriter) {
			web.RespondRequestEntityTooLarge(w, reason, "Invalid input.", nil)
		}, http.StatusRequestEntityTooLarge, "Invalid input.", nil},
		{"media type", func(w http.ResponseWriter) {
			web.RespondUnsupportedMediaType(w, reason, "Invalid input.", nil)
		}, http.StatusUnsupportedMediaType, "Invalid input.", nil},
		{"internal", func(w http.ResponseWriter) {
			web.RespondInternalServerError(w, reason)
		}, http.StatusInternalServerError, "An unexpected error occurred.", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			tc.respond(rec)

			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tc.code {
				t.Errorf("res.StatusCode = %d, want: %d", res.StatusCode, tc.code)
			}
			web.AssertContentType(t, res)

			body := web.DecodeJSONResponse(t, res)
			gotMsg, _ := body["message"].(string)
			if gotMsg != tc.message {
				t.Errorf("body[message] = %q, want: %q", gotMsg, tc.message)
			}

			gotErrs, _ := body["errors"].(map[string]any)
			for field, want := range tc.errors {
				if gotErrs[field] != want {
					t.Errorf("body[errors][%s] = %v, want: %v", field, gotErrs[field], want)
				}
			}
		})
	}
}

func TestParamsFromContext(t *testing.T) {
	t.Parallel()

	type params struct{ Text string }

	ctx := web.NewContextWithParams(context.Background(), params{Text: "hi"})

	got, err := web.ParamsFromContext[params](ctx)
	if err != nil {
		t.Fatalf("ParamsFromContext() = %v, want: nil", err)
	}
	if got.Text != "hi" {
		t.Errorf("ParamsFromContext().Text = %q, want: %q", got.Text, "hi")
	}

	if _, err := web.ParamsFromContext[*params](ctx); !errors.Is(err, web.ErrNoParams) {
		t.Errorf("ParamsFromContext[*params]() = %v, want: %v", err, web.ErrNoParams)
	}
	if _, err := web.ParamsFromContext[params](context.Background()); !errors.Is(err, web.ErrNoParams) {
		t.Errorf("ParamsFromContext(empty) = %v, want: %v", err, web.ErrNoParams)
	}
}
