// Package server assembles the Fiber application: services over the given
// stores, the middleware stack, operational endpoints and the /api routes.
package server

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"

	"github.com/Fazeelit/mohafizbackend/config"
	_ "github.com/Fazeelit/mohafizbackend/docs"
	"github.com/Fazeelit/mohafizbackend/internal/apperr"
	"github.com/Fazeelit/mohafizbackend/internal/controllers"
	"github.com/Fazeelit/mohafizbackend/internal/logging"
	"github.com/Fazeelit/mohafizbackend/internal/metrics"
	"github.com/Fazeelit/mohafizbackend/internal/middleware"
	"github.com/Fazeelit/mohafizbackend/internal/models"
	"github.com/Fazeelit/mohafizbackend/internal/repository"
	"github.com/Fazeelit/mohafizbackend/internal/routes"
	"github.com/Fazeelit/mohafizbackend/internal/security"
	"github.com/Fazeelit/mohafizbackend/internal/services"
	"github.com/Fazeelit/mohafizbackend/internal/storage"
)

type Options struct {
	Config  config.Config
	Log     logging.Logger
	Metrics *metrics.Metrics
	Stores  Stores
	Media   storage.Uploader

	// Ping reports store health for /healthz; nil is always healthy.
	Ping func(ctx context.Context) error

	// AccessLog receives one line per request; nil disables it.
	AccessLog io.Writer
}

// New builds the app. It fails only when the security primitives reject
// the configuration.
func New(opts Options) (*fiber.App, error) {
	cfg := opts.Config
	log := opts.Log
	if log == nil {
		log = logging.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	media := opts.Media
	if media == nil {
		media = storage.Disabled{}
	}

	hasher, err := security.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	tokens, err := security.NewTokenManager(security.TokenConfig{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTLs: map[string]time.Duration{
			string(models.RoleUser):  cfg.UserTokenTTL,
			string(models.RoleAdmin): cfg.AdminTokenTTL,
		},
		DefaultTTL: cfg.UserTokenTTL,
	})
	if err != nil {
		return nil, err
	}

	stores := opts.Stores.WithTimeout(cfg.MongoTimeout)

	accounts, err := services.NewAccountService(
		repository.NewAccountRepository(stores.Accounts), hasher, tokens, m, log)
	if err != nil {
		return nil, err
	}

	// Handlers that stream files get the media bound; their store calls
	// are still cut off at MongoTimeout by the wrapped stores.
	timeout, mediaTimeout := cfg.MongoTimeout, cfg.MediaTimeout
	h := routes.Controllers{
		Users:  controllers.NewAccountController(accounts, models.RoleUser, timeout),
		Admins: controllers.NewAccountController(accounts, models.RoleAdmin, timeout),
		Books: controllers.NewBookController(
			services.NewBookService(repository.NewCollection(stores.Books), media, log), mediaTimeout),
		Videos: controllers.NewVideoController(
			services.NewVideoService(repository.NewCollection(stores.Videos), media, log), mediaTimeout),
		Emergencies: controllers.NewEmergencyController(
			services.NewEmergencyService(repository.NewCollection(stores.Emergencies)), timeout),
		Bookings: controllers.NewBookingController(
			services.NewBookingService(repository.NewCollection(stores.Bookings)), timeout),
		News: controllers.NewNewsController(
			services.NewNewsService(repository.NewCollection(stores.News), media, log), mediaTimeout),
		Reports: controllers.NewReportController(
			services.NewReportService(repository.NewCollection(stores.Reports), media, log), mediaTimeout),
		Helpline: controllers.NewHelplineController(
			services.NewHelplineService(repository.NewCollection(stores.Helplines)), timeout),
	}

	app := fiber.New(fiber.Config{
		AppName:      "mohafiz-backend",
		ErrorHandler: apperr.Handler(log),
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestContext())
	app.Use(recover.New())
	if opts.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
			Output: opts.AccessLog,
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.HeaderAdminSignupKey,
	}))
	app.Use(m.Middleware())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Mohafiz backend is running")
	})
	app.Get("/healthz", healthz(opts.Ping, timeout))
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	app.Get("/docs/*", swagger.HandlerDefault)

	routes.Setup(app, h, routes.NewGuards(tokens, cfg.AdminSignupKey, cfg.AuthRateLimit))

	return app, nil
}

func healthz(ping func(ctx context.Context) error, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
			defer cancel()
			if err := ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
