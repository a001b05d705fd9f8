package handler

import (
	"errors"
	"io"
	"time"

	"face-attendance-backend/internal/recognizer"
	"face-attendance-backend/internal/repository"
	"face-attendance-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type AttendanceHandler struct {
	usecase *usecase.AttendanceUsecase
}

func NewAttendanceHandler(u *usecase.AttendanceUsecase) *AttendanceHandler {
	return &AttendanceHandler{usecase: u}
}

type ClockRequest struct {
	EmployeeID uint `json:"employee_id"`
}

func (h *AttendanceHandler) ClockIn(c *fiber.Ctx) error {
	return h.clock(c, usecase.ClockActionIn)
}

func (h *AttendanceHandler) ClockOut(c *fiber.Ctx) error {
	return h.clock(c, usecase.ClockActionOut)
}

func (h *AttendanceHandler) clock(c *fiber.Ctx, action string) error {
	var req ClockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.EmployeeID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "employee_id is required"})
	}

	record, err := h.usecase.Clock(req.EmployeeID, action, time.Now())
	if err != nil {
		return clockError(c, err)
	}

	response := fiber.Map{
		"message": "Clock-" + action + " recorded",
		"data":    record,
	}
	if action == usecase.ClockActionOut {
		response["working_hours"] = record.WorkingHours
	}
	return c.JSON(response)
}

// clockError translates the state machine's rejections into responses.
// Policy rejections are expected outcomes, so they carry the reason as-is.
func clockError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrOutOfWindow),
		errors.Is(err, usecase.ErrNotClockedIn),
		errors.Is(err, usecase.ErrClockOutBeforeIn),
		errors.Is(err, usecase.ErrInvalidAction):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, usecase.ErrAlreadyClockedIn),
		errors.Is(err, usecase.ErrAlreadyClockedOut),
		errors.Is(err, repository.ErrDuplicateRecord):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record attendance"})
	}
}

func (h *AttendanceHandler) Recognize(c *fiber.Ctx) error {
	// 1. Grab the captured frame from the multipart form
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot read image file"})
	}
	defer file.Close()
	image, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot read image file"})
	}

	// 2. Ask the face service who this is
	summary, err := h.usecase.Recognize(c.UserContext(), image, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, recognizer.ErrUnavailable) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Face recognition service unavailable, try again later"})
		}
		if errors.Is(err, usecase.ErrEmployeeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Recognition failed"})
	}

	// 3. No match is a normal answer, not an error
	if summary == nil {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "Face not recognized",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Face recognized",
		"employee": summary,
	})
}

func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	employeeID := c.QueryInt("employee_id")
	if employeeID < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "employee_id must be positive"})
	}

	filter := repository.AttendanceFilter{
		EmployeeID: uint(employeeID),
		Date:       c.Query("date"),
		From:       c.Query("from"),
		To:         c.Query("to"),
	}

	list, err := h.usecase.List(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance records"})
	}

	return c.JSON(fiber.Map{
		"message": "Attendance records fetched",
		"data":    list,
	})
}

func (h *AttendanceHandler) GetHistory(c *fiber.Ctx) error {
	employeeID := c.QueryInt("employee_id")
	if employeeID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "employee_id is required"})
	}
	month := c.Query("month")
	year := c.Query("year")

	history, err := h.usecase.History(uint(employeeID), month, year)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch history"})
	}

	return c.JSON(fiber.Map{
		"message": "History fetched",
		"data":    history,
	})
}

func (h *AttendanceHandler) GetTodayStatus(c *fiber.Ctx) error {
	employeeID := c.QueryInt("employee_id")
	if employeeID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "employee_id is required"})
	}

	record, err := h.usecase.TodayStatus(uint(employeeID), time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch today's status"})
	}

	// No record yet is a normal state for the kiosk, not a 404
	if record == nil {
		return c.JSON(fiber.Map{
			"message": "No attendance record for today",
			"status":  "NONE",
			"data":    nil,
		})
	}

	status := "CLOCKED_IN"
	if record.ClockOut != nil {
		status = "CLOCKED_OUT"
	}
	return c.JSON(fiber.Map{
		"message": "Attendance record found",
		"status":  status,
		"data":    record,
	})
}

func (h *AttendanceHandler) GetRecap(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	recap, err := h.usecase.Recap(date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build recap"})
	}

	return c.JSON(fiber.Map{
		"message": "Recap built",
		"data":    recap,
	})
}
