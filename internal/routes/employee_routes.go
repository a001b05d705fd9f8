package routes

import (
	"face-attendance-backend/config"
	"face-attendance-backend/internal/handler"
	"face-attendance-backend/internal/middleware"
	"face-attendance-backend/internal/recognizer"
	"face-attendance-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupEmployeeRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	employeeRepo := repository.NewEmployeeRepository(db)
	faceClient := recognizer.NewHTTPClient(cfg.FaceAPIURL, cfg.FaceAPITimeout)
	hdl := handler.NewEmployeeHandler(employeeRepo, faceClient, cfg.UploadDir)

	api := app.Group("/api/employees", middleware.Auth(cfg.JWTSecret))

	api.Get("/", hdl.GetAll)
	api.Get("/:id", hdl.GetByID)
	api.Post("/", hdl.Create)
	api.Put("/:id", hdl.Update)
	api.Delete("/:id", hdl.Delete)
	api.Post("/:id/enroll", hdl.EnrollFace)
}
