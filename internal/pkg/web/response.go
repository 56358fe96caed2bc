// Package web writes the JSON envelopes every endpoint shares.
package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/gopherkit/http/response"
)

// OKResponse is the success envelope. Data is omitted when nil.
type OKResponse[T any] struct {
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// ErrorResponse is the failure envelope. Errors maps an input field to what
// is wrong with it.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// OK writes the success envelope. A tool result looks like:
//
//	{
//	  "message": "Digest matches.",
//	  "data": {"matches": true}
//	}
func OK[T any](w http.ResponseWriter, status int, msg *string, data *T) {
	payload := &OKResponse[*T]{}
	if msg != nil {
		payload.Message = *msg
	}
	if data != nil {
		payload.Data = data
	}

	response.JSON(w, status, payload)
}

// Fail writes the failure envelope and logs reason, which never reaches the
// client. Client errors log at warn and server errors at error:
//
//	{
//	  "message": "Invalid length",
//	  "errors": {"key": "Key must be between 8 and 32 characters"}
//	}
func Fail(w http.ResponseWriter, status int, reason error, msg string, errs map[string]string) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(context.Background(), level, "request failed", "status", status, "reason", reason)

	response.JSON(w, status, &ErrorResponse{
		Message: msg,
		Errors:  errs,
	})
}

func RespondOK[T any](w http.ResponseWriter, msg *string, data *T) {
	OK(w, http.StatusOK, msg, data)
}

func RespondCreated[T any](w http.ResponseWriter, msg *string, data *T) {
	OK(w, http.StatusCreated, msg, data)
}

func RespondBadRequest(w http.ResponseWriter, err error, msg string, errs map[string]string) {
	Fail(w, http.StatusBadRequest, err, msg, errs)
}

func RespondNotFound(w http.ResponseWriter, err error, msg string, errs map[string]string) {
	Fail(w, http.StatusNotFound, err, msg, errs)
}

func RespondRequestTimeout(w http.ResponseWriter, err error, msg string, errs map[string]string) {
	Fail(w, http.StatusRequestTimeout, err, msg, errs)
}

func RespondRequestEntityTooLarge(w http.ResponseWriter, err error, msg string, errs map[string]string) {
	Fail(w, http.StatusRequestEntityTooLarge, err, msg, errs)
}

func RespondUnsupportedMediaType(w http.ResponseWriter, err error, msg string, errs map[string]string) {
	Fail(w, http.StatusUnsupportedMediaType, err, msg, errs)
}

func RespondUnprocessableEntity(w http.ResponseWriter, err error, msg string, errs map[string]string) {
	Fail(w, http.StatusUnprocessableEntity, err, msg, errs)
}

// RespondInternalServerError hides err from the client.
func RespondInternalServerError(w http.ResponseWriter, err error) {
	Fail(w, http.StatusInternalServerError, err, "An unexpected error occurred.", nil)
}
