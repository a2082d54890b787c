package serverutils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// BadRequest wraps ErrBadRequest with a client-facing message.
func BadRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}

// StatusFor maps an error returned by a handler to an HTTP status.
func StatusFor(err error) int {
	var fe *fiber.Error
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.As(err, &verrs), errors.Is(err, ErrBadRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware converts errors returned further down the chain into
// an ErrorResponse.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := StatusFor(err)
		message := err.Error()
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			message = ValidationMessage(err)
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
