package routes

import (
	"kardexplus/config"
	"kardexplus/controllers"
	"kardexplus/database"
	"kardexplus/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupMovimientoRoutes(app *fiber.App) {
	movimientoController := controllers.NewMovimientoController(database.GetDB())
	auth := &middleware.AuthMiddlewareStruct{DB: database.GetDB()}

	api := app.Group(config.MAIN_ROUTES+"/movimientos", middleware.AuthMiddleware)
	api.Get("/", auth.CheckPermission("movimiento.ver"), movimientoController.GetAll)
	api.Get("/kardex", auth.CheckPermission("movimiento.ver"), movimientoController.Kardex)
	api.Get("/kardex/export", auth.CheckPermission("movimiento.ver"), movimientoController.ExportKardexExcel)
	api.Get("/:id", auth.CheckPermission("movimiento.ver"), movimientoController.GetByID)
	api.Post("/", auth.CheckPermission("movimiento.crear"), movimientoController.Create)
}
