package routes

import (
	"kardexplus/config"
	"kardexplus/controllers"
	"kardexplus/database"
	"kardexplus/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupBodegaRoutes(app *fiber.App) {
	bodegaController := controllers.NewBodegaController(database.GetDB())
	auth := &middleware.AuthMiddlewareStruct{DB: database.GetDB()}

	api := app.Group(config.MAIN_ROUTES+"/bodegas", middleware.AuthMiddleware)
	api.Get("/", auth.CheckPermission("bodega.ver"), bodegaController.GetAll)
	api.Get("/:id", auth.CheckPermission("bodega.ver"), bodegaController.GetByID)
	api.Get("/:id/stock", auth.CheckPermission("bodega.ver"), bodegaController.GetStock)
	api.Post("/", auth.CheckPermission("bodega.administrar"), bodegaController.Create)
	api.Put("/:id", auth.CheckPermission("bodega.administrar"), bodegaController.Update)
	api.Delete("/:id", auth.CheckPermission("bodega.administrar"), bodegaController.Delete)
}
