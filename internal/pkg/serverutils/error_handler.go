package serverutils

import (
	"errors"

	"job-proposal-be/internal/exception"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors returned by controllers to
// the JSON envelope. Unknown errors become a 500 without leaking
// internals to the client.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *exception.AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.Code).JSON(
				ErrorResponseWithData(appErr.Code, appErr.Message, appErr.Data),
			)
		}

		var ambErr *exception.AmbiguousResumeError
		if errors.As(err, &ambErr) {
			// Disambiguation payload: the caller decides whether to proceed
			// with the best match or supply a different resume.
			return ctx.Status(fiber.StatusConflict).JSON(
				ErrorResponseWithData(fiber.StatusConflict, ambErr.Error(), ambErr),
			)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(
			ErrorResponse(fiber.StatusInternalServerError, err.Error()),
		)
	}
}
