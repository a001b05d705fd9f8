package main

import (
	"fmt"
	"log"

	"face-attendance-backend/config"
	"face-attendance-backend/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("Starting database seeding...")

	// Load .env manually since this is a separate script
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using system environment variables.")
	}

	cfg := config.Load()
	config.ConnectDB(cfg)

	database.SeedAll(config.DB)

	fmt.Println("Seeding done!")
}
