package errors

import (
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

type AppError struct {
	StatusCode int
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(statusCode int, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Message:    message,
	}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

func NewUnauthorizedError(message ...string) *AppError {
	if len(message) > 0 {
		return NewAppError(http.StatusUnauthorized, message[0])
	}
	return NewAppError(http.StatusUnauthorized, "Unauthorized")
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message)
}

func NewTooManyRequestsError(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, message)
}

func NewInternalServerError(originalError error, message string) *AppError {
	logrus.Errorf("[%s] %s", reflect.TypeOf(originalError).String(), originalError)
	return NewAppError(http.StatusInternalServerError, message)
}

// ValidationError carries per-field messages for a form that failed local validation.
// It never leaves the process as a store request.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// StoreError is returned for any failed call to the coupon store. StatusCode is
// zero when the request never got a response.
type StoreError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *StoreError) Error() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Err != nil:
		return fmt.Sprintf("coupon store request failed: %v", e.Err)
	default:
		return fmt.Sprintf("coupon store responded with status %d", e.StatusCode)
	}
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the store failure onto the status returned to the admin client.
func (e *StoreError) HTTPStatus() int {
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		return e.StatusCode
	}
	return http.StatusBadGateway
}
