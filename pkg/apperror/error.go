package apperror

import "net/http"

type AppError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails attaches a client-visible payload (validation messages, prompts).
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, message, nil)
}

// StoreUnavailable wraps a failed read or write against a job store.
func StoreUnavailable(err error) *AppError {
	return New(http.StatusBadGateway, "Job store unavailable. Please try again.", err)
}

func ServiceUnavailable(message string) *AppError {
	return New(http.StatusServiceUnavailable, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}
