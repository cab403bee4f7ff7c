package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Fazeelit/mohafizbackend/internal/controllers"
	"github.com/Fazeelit/mohafizbackend/internal/middleware"
)

func SetupRoutesUser(api fiber.Router, h *controllers.AccountController, g Guards) {
	users := api.Group("/users")

	users.Post("/signup", g.Limit, h.SignUp)
	users.Post("/login", g.Limit, h.Login)
	users.Put("/resetPassword", g.Limit, h.ResetPassword)

	users.Get("/me", g.Token, h.Me)
	users.Get("/", g.Token, g.Admin, h.List)
	users.Put("/updateUser/:id", g.Token, g.Admin, middleware.ValidateID(), h.Update)
	users.Delete("/:id", g.Token, g.Admin, middleware.ValidateID(), h.Delete)
}

func SetupRoutesAdmin(api fiber.Router, h *controllers.AccountController, g Guards) {
	admins := api.Group("/admins")

	admins.Post("/signupAdmin", g.Limit, g.SignupKey, h.SignUp)
	admins.Post("/loginAdmin", g.Limit, h.Login)
	admins.Put("/resetPasswordAdmin", g.Limit, h.ResetPassword)

	admins.Get("/me", g.Token, h.Me)
	admins.Get("/", g.Token, g.Admin, h.List)
	admins.Put("/updateAdmin/:id", g.Token, g.Admin, middleware.ValidateID(), h.Update)
	admins.Delete("/deleteAdmin/:id", g.Token, g.Admin, middleware.ValidateID(), h.Delete)
}
