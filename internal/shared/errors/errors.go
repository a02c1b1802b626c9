package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies an AppError. The response package maps each type to
// an HTTP status.
type ErrorType string

const (
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeValidation       ErrorType = "validation"
	ErrorTypeConflict         ErrorType = "conflict"
	ErrorTypeUnauthorized     ErrorType = "unauthorized"
	ErrorTypeForbidden        ErrorType = "forbidden"
	ErrorTypeInternal         ErrorType = "internal"
	ErrorTypeMethodNotAllowed ErrorType = "method_not_allowed"
	ErrorTypeExternal         ErrorType = "external"
	// ErrorTypeUnprocessable marks well-formed input that cannot be acted
	// on, such as game parameters no universe can satisfy.
	ErrorTypeUnprocessable   ErrorType = "unprocessable"
	ErrorTypeTooManyRequests ErrorType = "too_many_requests"
)

// AppError is the error type services hand to the HTTP layer.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newError(t ErrorType, message string, err error) error {
	return &AppError{Type: t, Message: message, Err: err}
}

func NotFoundf(format string, args ...any) error {
	return newError(ErrorTypeNotFound, fmt.Sprintf(format, args...), nil)
}

func Validation(message string) error {
	return newError(ErrorTypeValidation, message, nil)
}

func Validationf(format string, args ...any) error {
	return newError(ErrorTypeValidation, fmt.Sprintf(format, args...), nil)
}

func WrapValidation(message string, err error) error {
	return newError(ErrorTypeValidation, message, err)
}

func WrapUnprocessable(message string, err error) error {
	return newError(ErrorTypeUnprocessable, message, err)
}

func Conflictf(format string, args ...any) error {
	return newError(ErrorTypeConflict, fmt.Sprintf(format, args...), nil)
}

func WrapInternal(message string, err error) error {
	return newError(ErrorTypeInternal, message, err)
}

func Unauthorized(message string) error {
	return newError(ErrorTypeUnauthorized, message, nil)
}

func Forbidden(message string) error {
	return newError(ErrorTypeForbidden, message, nil)
}

func MethodNotAllowed(method string) error {
	return newError(ErrorTypeMethodNotAllowed, fmt.Sprintf("method %s not allowed", method), nil)
}

func External(message string) error {
	return newError(ErrorTypeExternal, message, nil)
}

func TooManyRequests(message string) error {
	return newError(ErrorTypeTooManyRequests, message, nil)
}

// GetType returns the type of the first AppError in err's chain, or
// ErrorTypeInternal if there is none.
func GetType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// PublicMessage is the message safe to show a client. Internal errors and
// errors that are not AppErrors stay server-side.
func PublicMessage(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Type == ErrorTypeInternal {
		return "internal server error"
	}
	return appErr.Error()
}
