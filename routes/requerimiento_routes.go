package routes

import (
	"kardexplus/config"
	"kardexplus/controllers"
	"kardexplus/database"
	"kardexplus/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupRequerimientoRoutes(app *fiber.App) {
	requerimientoController := controllers.NewRequerimientoController(database.GetDB())
	auth := &middleware.AuthMiddlewareStruct{DB: database.GetDB()}

	api := app.Group(config.MAIN_ROUTES+"/requerimientos", middleware.AuthMiddleware)
	api.Get("/", auth.CheckPermission("requerimiento.ver"), requerimientoController.GetAll)
	api.Get("/:id", auth.CheckPermission("requerimiento.ver"), requerimientoController.GetByID)
	api.Post("/", auth.CheckPermission("requerimiento.crear"), requerimientoController.Create)
	api.Put("/:id/aprobar", auth.CheckPermission("requerimiento.aprobar"), requerimientoController.Aprobar)
	api.Put("/:id/cancelar", auth.CheckPermission("requerimiento.crear"), requerimientoController.Cancelar)
	api.Post("/:id/despacho", auth.CheckPermission("requerimiento.despachar"), requerimientoController.Despachar)
}
