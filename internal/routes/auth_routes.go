package routes

import (
	"face-attendance-backend/config"
	"face-attendance-backend/internal/handler"
	"face-attendance-backend/internal/repository"
	"face-attendance-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	userRepo := repository.NewUserRepository(db)
	u := usecase.NewUserUsecase(userRepo, cfg.JWTSecret)
	hdl := handler.NewAuthHandler(u)

	api := app.Group("/api/auth")
	api.Post("/register", hdl.Register)
	api.Post("/login", hdl.Login)
}
