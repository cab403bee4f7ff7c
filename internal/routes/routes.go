package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/Fazeelit/mohafizbackend/internal/controllers"
	"github.com/Fazeelit/mohafizbackend/internal/middleware"
)

// Guards are the per-route middlewares shared by every route group.
type Guards struct {
	Token     fiber.Handler
	Admin     fiber.Handler
	Limit     fiber.Handler
	SignupKey fiber.Handler
}

// NewGuards builds the guards. A rate limit of zero disables limiting on the
// credential endpoints.
func NewGuards(v middleware.TokenVerifier, signupKey string, authRateLimit int) Guards {
	limit := func(c *fiber.Ctx) error { return c.Next() }
	if authRateLimit > 0 {
		limit = limiter.New(limiter.Config{
			Max:        authRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests, please try again later")
			},
		})
	}
	return Guards{
		Token:     middleware.RequireToken(v),
		Admin:     middleware.RequireAdmin(),
		Limit:     limit,
		SignupKey: middleware.RequireSignupKey(signupKey),
	}
}

type Controllers struct {
	Users       *controllers.AccountController
	Admins      *controllers.AccountController
	Books       *controllers.BookController
	Videos      *controllers.VideoController
	Emergencies *controllers.EmergencyController
	Bookings    *controllers.BookingController
	News        *controllers.NewsController
	Reports     *controllers.ReportController
	Helpline    *controllers.HelplineController
}

// Setup mounts every route group under /api.
func Setup(app *fiber.App, h Controllers, g Guards) {
	api := app.Group("/api")

	SetupRoutesUser(api, h.Users, g)
	SetupRoutesAdmin(api, h.Admins, g)
	SetupRoutesBook(api, h.Books, g)
	SetupRoutesVideo(api, h.Videos, g)
	SetupRoutesEmergency(api, h.Emergencies, g)
	SetupRoutesBooking(api, h.Bookings, g)
	SetupRoutesNews(api, h.News, g)
	SetupRoutesReport(api, h.Reports, g)
	SetupRoutesHelpline(api, h.Helpline, g)
}
