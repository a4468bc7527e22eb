package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Validation(message string, err error) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

// NotReady signals that identity or the backing store is not established
// yet. The caller may retry after bootstrap completes.
func NotReady(message string, err error) *AppError {
	return &AppError{
		Code:    "NOT_READY",
		Message: message,
		Status:  http.StatusServiceUnavailable,
		Err:     err,
	}
}

func Role(message string) *AppError {
	return &AppError{
		Code:    "ROLE_ERROR",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     nil,
	}
}

func SelfChat(message string) *AppError {
	return &AppError{
		Code:    "SELF_CHAT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     nil,
	}
}

func SendFailed(message string, err error) *AppError {
	return &AppError{
		Code:    "SEND_FAILED",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func Subscription(message string, err error) *AppError {
	return &AppError{
		Code:    "SUBSCRIPTION_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Unsupported marks an operation that exists in the contract but is
// deliberately not implemented. It must fail loudly, never no-op.
func Unsupported(operation string) *AppError {
	return &AppError{
		Code:    "UNSUPPORTED_OPERATION",
		Message: fmt.Sprintf("%s is not available", operation),
		Status:  http.StatusNotImplemented,
		Err:     nil,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func TooManyRequests(message string, waitTime interface{}) *AppError {
	return &AppError{
		Code:    "TOO_MANY_REQUESTS",
		Message: message,
		Status:  http.StatusTooManyRequests,
		Err:     nil,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
