package routes

import (
	"kardexplus/config"
	"kardexplus/controllers"
	"kardexplus/database"
	"kardexplus/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authController := controllers.NewAuthController(database.GetDB())

	api := app.Group(config.MAIN_ROUTES + "/auth")
	api.Post("/login", authController.Login)

	protegido := app.Group(config.MAIN_ROUTES+"/auth", middleware.AuthMiddleware)
	protegido.Get("/logout", authController.Logout)
	protegido.Get("/isLoggedIn", authController.IsLoggedIn)
}
