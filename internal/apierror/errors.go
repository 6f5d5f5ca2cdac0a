// Package apierror defines the error kinds the service can surface over the
// wire. Errors are raised at the lowest layer that detects them and travel
// unmodified up to the fiber error handler, the single place that turns a
// kind into an HTTP response.
package apierror

import "github.com/gofiber/fiber/v2"

type Kind string

const (
	KindValidation  Kind = "validation"
	KindAuthInvalid Kind = "auth_invalid"
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindRateLimited Kind = "rate_limited"
	KindInternal    Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Status  int
	Details any
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(message string, details any) *Error {
	if message == "" {
		message = "Invalid input"
	}
	return &Error{Kind: KindValidation, Message: message, Status: fiber.StatusBadRequest, Details: details}
}

func AuthInvalid(message string) *Error {
	if message == "" {
		message = "Unauthorized"
	}
	return &Error{Kind: KindAuthInvalid, Message: message, Status: fiber.StatusUnauthorized}
}

func NotFound(message string) *Error {
	if message == "" {
		message = "Not found"
	}
	return &Error{Kind: KindNotFound, Message: message, Status: fiber.StatusNotFound}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message, Status: fiber.StatusConflict}
}

func RateLimited(message string) *Error {
	if message == "" {
		message = "Too many requests"
	}
	return &Error{Kind: KindRateLimited, Message: message, Status: fiber.StatusTooManyRequests}
}
