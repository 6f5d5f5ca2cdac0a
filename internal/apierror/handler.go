package apierror

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// FiberErrorHandler translates errors reaching the top of the request
// pipeline into JSON responses. Known kinds keep their message and status;
// anything else is logged with full detail and answered with a generic 500
// so internals never leak into the body.
func FiberErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			body := fiber.Map{"error": apiErr.Message}
			if apiErr.Details != nil {
				body["details"] = apiErr.Details
			}
			return c.Status(apiErr.Status).JSON(body)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			// Unmatched routes and other framework-level failures.
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		logger.Error("unhandled error",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}
