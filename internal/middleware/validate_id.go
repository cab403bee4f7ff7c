package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Fazeelit/mohafizbackend/internal/apperr"
	"github.com/Fazeelit/mohafizbackend/utils"
)

const localParamID = "param_id"

// ValidateID parses the :id route param as an ObjectID and rejects the
// request with 400 otherwise.
func ValidateID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := utils.Oid(c.Params("id"))
		if err != nil {
			return apperr.Validation("Invalid ID")
		}
		c.Locals(localParamID, id)
		return c.Next()
	}
}

// ParamID returns the id parsed by ValidateID.
func ParamID(c *fiber.Ctx) (bson.ObjectID, error) {
	if id, ok := c.Locals(localParamID).(bson.ObjectID); ok {
		return id, nil
	}
	id, err := utils.Oid(c.Params("id"))
	if err != nil {
		return bson.NilObjectID, apperr.Validation("Invalid ID")
	}
	return id, nil
}
