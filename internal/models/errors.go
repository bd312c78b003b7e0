package models

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Error codes for the closed set of domain failure kinds.
const (
	CodeTypeError     = "TYPE_ERROR"
	CodeValueError    = "VALUE_ERROR"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeNotFound      = "NOT_FOUND"
	CodeAuthError     = "AUTH_ERROR"
	CodeNotAllowed    = "NOT_ALLOWED"
	CodeInternalError = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AppError is the application error type carried by every failing domain
// operation. Code identifies the failure kind, Message is safe to echo to
// the client verbatim.
type AppError struct {
	Code    string
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

// NewTypeError reports a value of the wrong primitive kind. A nil value is
// rendered as "undefined" to keep the wire message stable.
func NewTypeError(value any, kind string) *AppError {
	rendered := "undefined"
	if value != nil {
		rendered = fmt.Sprintf("%v", value)
	}
	return &AppError{
		Code:    CodeTypeError,
		Message: fmt.Sprintf("%s is not a %s", rendered, kind),
	}
}

// NewValueError reports a well-typed but semantically invalid value.
func NewValueError(message string) *AppError {
	return &AppError{
		Code:    CodeValueError,
		Message: message,
	}
}

// NewAlreadyExistsError reports a violated uniqueness constraint.
func NewAlreadyExistsError(message string) *AppError {
	return &AppError{
		Code:    CodeAlreadyExists,
		Message: message,
	}
}

// NewNotFoundError reports a missing referenced entity.
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
	}
}

// NewAuthError reports a credential mismatch.
func NewAuthError(message string) *AppError {
	return &AppError{
		Code:    CodeAuthError,
		Message: message,
	}
}

// NewNotAllowedError reports an operation forbidden by a domain rule.
func NewNotAllowedError(message string) *AppError {
	return &AppError{
		Code:    CodeNotAllowed,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternalError,
		Message: "Internal server error",
		Err:     err,
	}
}

// StatusForError maps an error to the HTTP status code the transport layer
// should respond with.
func StatusForError(err error) int {
	appErr, ok := err.(*AppError)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeTypeError, CodeValueError:
		return fiber.StatusBadRequest
	case CodeAuthError:
		return fiber.StatusUnauthorized
	case CodeNotAllowed:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeAlreadyExists:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes the standard error envelope. Wrapped causes are
// logged server-side and never echoed to the client.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	appErr, ok := err.(*AppError)
	if !ok {
		return c.Status(status).JSON(ErrorResponse{Error: err.Error()})
	}

	if appErr.Err != nil {
		slog.ErrorContext(c.UserContext(), "request error",
			slog.String("code", appErr.Code),
			slog.String("path", c.Path()),
			slog.String("cause", appErr.Err.Error()),
		)
	}

	return c.Status(status).JSON(ErrorResponse{
		Error: appErr.Message,
		Code:  appErr.Code,
	})
}
