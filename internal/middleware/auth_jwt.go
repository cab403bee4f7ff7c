package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Fazeelit/mohafizbackend/internal/apperr"
	"github.com/Fazeelit/mohafizbackend/internal/models"
	"github.com/Fazeelit/mohafizbackend/internal/security"
)

const (
	localUserID   = "user_id"
	localRole     = "role"
	localIdentity = "identity"
)

type TokenVerifier interface {
	Verify(token string) (security.Identity, error)
}

// bearer extracts the token from "Authorization: Bearer <token>".
func bearer(c *fiber.Ctx) (string, bool) {
	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) < 7 || !strings.EqualFold(auth[:7], "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(auth[7:])
	return token, token != ""
}

// RequireToken rejects requests without a bearer token (401) or with one
// that fails verification (403). On success the identity, its id and role
// are stored in Locals.
func RequireToken(v TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearer(c)
		if !ok {
			return apperr.Unauthenticated("User not authenticated")
		}

		id, err := v.Verify(token)
		if err != nil {
			return apperr.Forbidden("Invalid or expired token")
		}

		c.Locals(localIdentity, id)
		c.Locals(localUserID, id.ID)
		c.Locals(localRole, id.Role)
		return c.Next()
	}
}

// RequireAdmin must run after RequireToken. A missing role is treated as
// no token at all.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(localRole).(string)
		if role == "" {
			return apperr.Unauthenticated("User not authenticated")
		}
		if role != string(models.RoleAdmin) {
			return apperr.Forbidden("Access denied. Admins only.")
		}
		return c.Next()
	}
}
