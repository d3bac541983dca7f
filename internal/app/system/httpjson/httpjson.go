// Package httpjson writes the API's uniform JSON envelopes.
//
// Success bodies carry exactly one payload member alongside "success":
//
//	{ "success": true, "data": ... }
//	{ "success": true, "user": ... }
//	{ "success": true, "msg": "Appliance deleted" }
//
// Failures always use the same shape, with the HTTP status mirrored in
// the body:
//
//	{ "success": false, "statusCode": 404, "message": "Goal not found" }
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Body is the success envelope. Exactly one payload member is set per
// response; unset members are omitted.
type Body struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	User    any    `json:"user,omitempty"`
	Tip     any    `json:"tip,omitempty"`
	Tips    any    `json:"tips,omitempty"`
	Msg     string `json:"msg,omitempty"`
}

func write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Data writes a success envelope with a "data" payload.
func Data(w http.ResponseWriter, status int, v any) {
	write(w, status, Body{Success: true, Data: v})
}

// User writes a success envelope with a "user" payload.
func User(w http.ResponseWriter, status int, v any) {
	write(w, status, Body{Success: true, User: v})
}

// Tip writes a success envelope with a single "tip" payload.
func Tip(w http.ResponseWriter, status int, v any) {
	write(w, status, Body{Success: true, Tip: v})
}

// Tips writes a success envelope with a "tips" payload.
func Tips(w http.ResponseWriter, status int, v any) {
	write(w, status, Body{Success: true, Tips: v})
}

// Msg writes a success envelope with only a human-readable message.
func Msg(w http.ResponseWriter, status int, msg string) {
	write(w, status, Body{Success: true, Msg: msg})
}

// APIError is an error with an HTTP status. Handlers return these (or
// wrap store errors into them); anything else becomes a 500.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string { return e.Message }

// E builds an APIError with the given status and message.
func E(status int, msg string) *APIError {
	return &APIError{StatusCode: status, Message: msg}
}

// Validation is a 400 for bad or missing input fields.
func Validation(msg string) *APIError { return E(http.StatusBadRequest, msg) }

// Forbidden is a 403 for a missing, malformed, or rejected credential.
func Forbidden(msg string) *APIError { return E(http.StatusForbidden, msg) }

// NotFound is a 404. Missing records and records owned by someone else
// share this answer so non-owners cannot probe for existence.
func NotFound(msg string) *APIError { return E(http.StatusNotFound, msg) }

// Internal is a 500 for storage or other infrastructure failures.
func Internal(msg string) *APIError { return E(http.StatusInternalServerError, msg) }

// errorBody mirrors the status in the payload.
type errorBody struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// Error converts err into the uniform error envelope. Non-APIError
// values are logged server-side and reported as a generic 500; nothing
// internal leaks to the client.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		if log != nil {
			log.Error("unexpected handler error", zap.Error(err))
		}
		apiErr = Internal("Internal Server Error")
	}
	write(w, apiErr.StatusCode, errorBody{
		Success:    false,
		StatusCode: apiErr.StatusCode,
		Message:    apiErr.Message,
	})
}

// Decode parses a JSON request body into dst, returning a Validation
// error on malformed input.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return Validation("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return Validation("invalid JSON body")
	}
	return nil
}
