package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// APIError represents a custom error type for API responses
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

// Error returns the error message
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any APIError carrying the same code, so wrapped copies of a
// sentinel still satisfy errors.Is.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func NewAPIError(code, message string, status int, details ...string) *APIError {
	err := &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

var (
	ErrInvalidInput = NewAPIError("INVALID_INPUT", "Invalid request data", http.StatusBadRequest)
	ErrUnauthorized = NewAPIError("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	ErrNotFound     = NewAPIError("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrInternal     = NewAPIError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
	ErrConflict     = NewAPIError("CONFLICT", "Resource conflict", http.StatusConflict)

	// Client-side failures.
	ErrNoSession  = NewAPIError("NO_SESSION", "Usuario no encontrado", http.StatusUnauthorized)
	ErrConnection = NewAPIError("CONNECTION_ERROR", "Error de conexión", 0)
	ErrBackend    = NewAPIError("BACKEND_ERROR", "Error del servidor", http.StatusBadGateway)
)

func Wrap(err error, code, message string, status int) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return NewAPIError(code, message, status, err.Error())
}

// Backend builds an ErrBackend-coded error carrying the backend's own message.
func Backend(message string, status int, details ...string) *APIError {
	return NewAPIError(ErrBackend.Code, message, status, details...)
}

// Message extracts the human-readable message of an APIError, or err.Error().
func Message(err error) string {
	var apiErr *APIError
	if As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// Re-exported so callers importing this package as "errors" keep the stdlib helpers.
var (
	New = stderrors.New
	Is  = stderrors.Is
	As  = stderrors.As
)
