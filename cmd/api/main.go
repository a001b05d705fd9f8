package main

import (
	"fmt"

	"face-attendance-backend/config"
	"face-attendance-backend/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("1. Starting up... loading .env")
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: no .env file found, using system environment variables.")
	}

	cfg := config.Load()

	fmt.Println("2. Connecting to database...")
	config.ConnectDB(cfg)
	fmt.Println("3. Database ready, setting up routes...")

	app := fiber.New()

	// Global middleware
	app.Use(cors.New())   // the kiosk frontend runs on another origin
	app.Use(logger.New()) // request log in the terminal

	// Serve enrolled photos (http://localhost:3000/uploads/...)
	app.Static("/uploads", cfg.UploadDir)

	routes.SetupAuthRoutes(app, config.DB, cfg)
	routes.SetupEmployeeRoutes(app, config.DB, cfg)
	routes.SetupAttendanceRoutes(app, config.DB, cfg)

	fmt.Println("4. Server ready on port :" + cfg.Port)
	app.Listen(":" + cfg.Port)
}
