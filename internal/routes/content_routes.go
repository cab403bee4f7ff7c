package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Fazeelit/mohafizbackend/internal/controllers"
	"github.com/Fazeelit/mohafizbackend/internal/middleware"
)

func SetupRoutesBook(api fiber.Router, h *controllers.BookController, g Guards) {
	books := api.Group("/books")
	id := middleware.ValidateID()

	books.Get("/", h.List)
	books.Get("/download/:id", id, h.Download)
	books.Get("/:id", id, h.Get)

	books.Post("/uploadBook", g.Token, g.Admin, h.Upload)
	books.Put("/updateBook/:id", g.Token, g.Admin, id, h.Update)
	books.Delete("/deleteBook/:id", g.Token, g.Admin, id, h.Delete)
}

func SetupRoutesVideo(api fiber.Router, h *controllers.VideoController, g Guards) {
	videos := api.Group("/videos")
	id := middleware.ValidateID()

	videos.Get("/download/:id", id, h.Download)
	videos.Get("/", g.Token, h.List)
	videos.Get("/:id", g.Token, id, h.Get)

	videos.Post("/uploadVideo", g.Token, g.Admin, h.Upload)
	videos.Put("/updateVideo/:id", g.Token, g.Admin, id, h.Update)
	videos.Delete("/deleteVideo/:id", g.Token, g.Admin, id, h.Delete)
}

func SetupRoutesEmergency(api fiber.Router, h *controllers.EmergencyController, g Guards) {
	alerts := api.Group("/emergencies")
	id := middleware.ValidateID()

	alerts.Get("/", h.List)
	alerts.Get("/:id", id, h.Get)
	alerts.Post("/createAlert", g.Token, h.Create)

	alerts.Put("/updateEmergency/:id", g.Token, g.Admin, id, h.Update)
	alerts.Delete("/deleteEmergency/:id", g.Token, g.Admin, id, h.Delete)
}

func SetupRoutesBooking(api fiber.Router, h *controllers.BookingController, g Guards) {
	bookings := api.Group("/bookings")
	id := middleware.ValidateID()

	bookings.Post("/createBooking", h.Create)
	bookings.Get("/", g.Token, g.Admin, h.List)
	bookings.Get("/:id", g.Token, id, h.Get)

	bookings.Put("/updateBooking/:id", g.Token, g.Admin, id, h.Update)
	bookings.Delete("/deleteBooking/:id", g.Token, g.Admin, id, h.Delete)
}

func SetupRoutesNews(api fiber.Router, h *controllers.NewsController, g Guards) {
	news := api.Group("/news")
	id := middleware.ValidateID()

	news.Get("/", h.List)
	news.Get("/:id", id, h.Get)

	news.Post("/createNews", g.Token, g.Admin, h.Create)
	news.Put("/updateNews/:id", g.Token, g.Admin, id, h.Update)
	news.Delete("/deleteNews/:id", g.Token, g.Admin, id, h.Delete)
}

func SetupRoutesReport(api fiber.Router, h *controllers.ReportController, g Guards) {
	reports := api.Group("/reports")
	id := middleware.ValidateID()

	reports.Post("/createReport", h.Create)
	reports.Get("/track/:trackingId", h.Track)

	reports.Get("/", g.Token, g.Admin, h.List)
	reports.Get("/:id", g.Token, g.Admin, id, h.Get)
	reports.Put("/updateReport/:id", g.Token, g.Admin, id, h.Update)
	reports.Delete("/deleteReport/:id", g.Token, g.Admin, id, h.Delete)
}

func SetupRoutesHelpline(api fiber.Router, h *controllers.HelplineController, g Guards) {
	helpline := api.Group("/helpline")
	id := middleware.ValidateID()

	helpline.Post("/createHelpline", h.Create)

	helpline.Get("/", g.Token, g.Admin, h.List)
	helpline.Get("/:id", g.Token, g.Admin, id, h.Get)
	helpline.Delete("/deleteHelpline/:id", g.Token, g.Admin, id, h.Delete)
}
