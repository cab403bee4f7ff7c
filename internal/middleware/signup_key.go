package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/Fazeelit/mohafizbackend/internal/apperr"
)

const HeaderAdminSignupKey = "X-Admin-Signup-Key"

// RequireSignupKey gates admin self-registration behind a shared key. An
// empty key leaves the endpoint open.
func RequireSignupKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			return c.Next()
		}
		got := c.Get(HeaderAdminSignupKey)
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			return apperr.Forbidden("Invalid admin signup key")
		}
		return c.Next()
	}
}
