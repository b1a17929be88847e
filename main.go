package main

import (
	"fmt"
	"log"
	"os"

	"kardexplus/config"
	"kardexplus/controllers/idgen"
	"kardexplus/database"
	"kardexplus/routes"

	"github.com/gofiber/fiber/v2"
)

func main() {
	config.LoadConfig()

	app := fiber.New()

	database.EnsureDatabaseExists(config.DBName)

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		database.SeedDemoData(db)
	}

	config.SetupCORS(app)

	routes.SetupAuthRoutes(app)
	routes.SetupUserRoutes(app)
	routes.SetupItemRoutes(app)
	routes.SetupBodegaRoutes(app)
	routes.SetupMovimientoRoutes(app)
	routes.SetupRequerimientoRoutes(app)

	port := config.APP_PORT
	fmt.Println("🚀 Servidor escuchando en el puerto " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
