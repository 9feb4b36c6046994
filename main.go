package main

import (
	"log"

	"github.com/farmdirect/backend-go/config"
	"github.com/farmdirect/backend-go/database"
	"github.com/farmdirect/backend-go/handlers"
	customMiddleware "github.com/farmdirect/backend-go/middleware"
	"github.com/farmdirect/backend-go/routes"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(customMiddleware.Metrics())

	// Connect to MongoDB
	db, err := database.Connect(
		config.GetEnv("MONGODB_URI", "mongodb://localhost:27017"),
		config.GetEnv("MONGODB_DB", "farmdirect"),
	)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer func() {
		if err := database.Disconnect(db); err != nil {
			log.Printf("Failed to disconnect from database: %v", err)
		}
	}()

	// Setup routes
	routes.SetupRoutes(e, handlers.New(db))

	// Start the server
	port := config.GetEnv("PORT", "3000")
	e.Logger.Fatal(e.Start(":" + port))
}
