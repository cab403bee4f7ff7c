package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Fazeelit/mohafizbackend/internal/apperr"
	"github.com/Fazeelit/mohafizbackend/internal/security"
	"github.com/Fazeelit/mohafizbackend/utils"
)

// IdentityFromLocals returns what RequireToken stored.
func IdentityFromLocals(c *fiber.Ctx) (security.Identity, bool) {
	id, ok := c.Locals(localIdentity).(security.Identity)
	return id, ok
}

// UIDObjectID returns the token subject as an ObjectID.
func UIDObjectID(c *fiber.Ctx) (bson.ObjectID, error) {
	uid, _ := c.Locals(localUserID).(string)
	if uid == "" {
		return bson.NilObjectID, apperr.Unauthenticated("User not authenticated")
	}
	oid, err := bson.ObjectIDFromHex(uid)
	if err != nil {
		return bson.NilObjectID, apperr.Unauthenticated("User not authenticated")
	}
	return oid, nil
}

// UIDPtr is the token subject for optional references such as createdBy;
// nil when the request carries no valid subject.
func UIDPtr(c *fiber.Ctx) *bson.ObjectID {
	uid, _ := c.Locals(localUserID).(string)
	return utils.OidPtr(uid)
}
