package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Fazeelit/mohafizbackend/internal/logging"
)

const internalMessage = "Internal server error"

// Body is the JSON shape of every error response.
type Body struct {
	Message string   `json:"message"`
	Error   []string `json:"error,omitempty"`
}

// Handler is the fiber.Config.ErrorHandler for the app. Internal causes are
// logged with the request id and replaced by a generic message.
func Handler(log logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := As(err); ok {
			if e.Kind == KindInternal {
				log.Error(c.UserContext(), e.Message,
					"error", e.Err, "method", c.Method(), "path", c.Path())
				return c.Status(fiber.StatusInternalServerError).JSON(Body{Message: internalMessage})
			}
			return c.Status(e.Kind.Status()).JSON(Body{Message: e.Message, Error: e.Details})
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			msg := fe.Message
			if fe.Code >= fiber.StatusInternalServerError {
				log.Error(c.UserContext(), "fiber error", "error", fe.Message, "path", c.Path())
				msg = internalMessage
			}
			return c.Status(fe.Code).JSON(Body{Message: msg})
		}

		log.Error(c.UserContext(), "unhandled error", "error", err, "method", c.Method(), "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(Body{Message: internalMessage})
	}
}
