package routes

import (
	"face-attendance-backend/config"
	"face-attendance-backend/internal/handler"
	"face-attendance-backend/internal/middleware"
	"face-attendance-backend/internal/recognizer"
	"face-attendance-backend/internal/repository"
	"face-attendance-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAttendanceRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	attendanceRepo := repository.NewAttendanceRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	faceClient := recognizer.NewHTTPClient(cfg.FaceAPIURL, cfg.FaceAPITimeout)

	u := usecase.NewAttendanceUsecase(attendanceRepo, employeeRepo, faceClient, cfg.ClockInWindow, cfg.ClockOutWindow)
	hdl := handler.NewAttendanceHandler(u)

	// Kiosk endpoints: the terminal has no account, it identifies people by face
	api := app.Group("/api/attendance")
	api.Post("/recognize", hdl.Recognize)
	api.Post("/checkin", hdl.ClockIn)
	api.Post("/checkout", hdl.ClockOut)
	api.Get("/today", hdl.GetTodayStatus)

	// Admin endpoints
	admin := api.Group("/", middleware.Auth(cfg.JWTSecret))
	admin.Get("/", hdl.List)
	admin.Get("/history", hdl.GetHistory)
	admin.Get("/recap", hdl.GetRecap)
}
