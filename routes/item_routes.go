package routes

import (
	"kardexplus/config"
	"kardexplus/controllers"
	"kardexplus/database"
	"kardexplus/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupItemRoutes(app *fiber.App) {
	itemController := controllers.NewItemController(database.GetDB())
	presentacionController := controllers.NewPresentacionController(database.GetDB())
	auth := &middleware.AuthMiddlewareStruct{DB: database.GetDB()}

	api := app.Group(config.MAIN_ROUTES+"/items", middleware.AuthMiddleware)
	api.Get("/", auth.CheckPermission("item.ver"), itemController.GetAll)
	api.Get("/categorias", auth.CheckPermission("item.ver"), itemController.GetCategorias)
	api.Get("/:id", auth.CheckPermission("item.ver"), itemController.GetByID)
	api.Post("/", auth.CheckPermission("item.administrar"), itemController.Create)
	api.Post("/upload-excel", auth.CheckPermission("item.administrar"), itemController.UploadExcel)
	api.Put("/:id", auth.CheckPermission("item.administrar"), itemController.Update)
	api.Delete("/:id", auth.CheckPermission("item.administrar"), itemController.Delete)

	// Presentations hang off their item; update and delete go by their own ID.
	api.Get("/:itemId/presentaciones", auth.CheckPermission("item.ver"), presentacionController.GetByItem)
	api.Post("/:itemId/presentaciones", auth.CheckPermission("item.administrar"), presentacionController.Create)

	presentaciones := app.Group(config.MAIN_ROUTES+"/presentaciones", middleware.AuthMiddleware)
	presentaciones.Put("/:id", auth.CheckPermission("item.administrar"), presentacionController.Update)
	presentaciones.Delete("/:id", auth.CheckPermission("item.administrar"), presentacionController.Delete)
}
