package errors

import "net/http"

// APIError carries the error taxonomy: validation and auth errors abort the
// triggering action before any write; upstream errors abort only the failing
// write. Persistence warnings are deliberately not errors; they ride in
// success payloads (see service.WorkoutService).
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

func New(status int, code, message string) *APIError {
	return &APIError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Validation marks bad or missing user input. Blocks the action before any write.
func Validation(message string) *APIError {
	return New(http.StatusBadRequest, "validation_error", message)
}

// Auth marks a missing, invalid, or expired credential.
func Auth(message string) *APIError {
	if message == "" {
		message = "unauthorized"
	}
	return New(http.StatusUnauthorized, "auth_error", message)
}

// Upstream marks a failed or timed-out call to a collaborator. The operation
// aborts; already-applied local state is not rolled back.
func Upstream(message string) *APIError {
	if message == "" {
		message = "upstream request failed"
	}
	return New(http.StatusBadGateway, "upstream_error", message)
}

func Internal(message string) *APIError {
	if message == "" {
		message = "internal server error"
	}
	return New(http.StatusInternalServerError, "internal_error", message)
}

func NotFound(message string) *APIError {
	return New(http.StatusNotFound, "not_found", message)
}

func Conflict(message string) *APIError {
	return New(http.StatusConflict, "conflict", message)
}
