package routes

import (
	"kardexplus/config"
	"kardexplus/controllers"
	"kardexplus/database"
	"kardexplus/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userController := controllers.NewUserController(database.GetDB())
	roleController := controllers.NewRoleController(database.GetDB())
	auth := &middleware.AuthMiddlewareStruct{DB: database.GetDB()}

	api := app.Group(config.MAIN_ROUTES+"/users", middleware.AuthMiddleware)
	api.Get("/", auth.CheckPermission("usuario.ver"), userController.GetAll)
	api.Get("/:id", auth.CheckPermission("usuario.ver"), userController.GetByID)
	api.Post("/", auth.CheckPermission("usuario.administrar"), userController.Create)
	api.Put("/:id", auth.CheckPermission("usuario.administrar"), userController.Update)
	api.Delete("/:id", auth.CheckPermission("usuario.administrar"), userController.Delete)

	roles := app.Group(config.MAIN_ROUTES+"/roles", middleware.AuthMiddleware)
	roles.Get("/", auth.CheckPermission("usuario.ver"), roleController.GetAll)
	roles.Get("/permissions", auth.CheckPermission("usuario.ver"), roleController.GetPermissions)
	roles.Post("/", auth.CheckPermission("usuario.administrar"), roleController.Create)
	roles.Put("/:id", auth.CheckPermission("usuario.administrar"), roleController.Update)
	roles.Delete("/:id", auth.CheckPermission("usuario.administrar"), roleController.Delete)
}
