package handler

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"face-attendance-backend/internal/model"
	"face-attendance-backend/internal/recognizer"
	"face-attendance-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EmployeeHandler struct {
	repo       repository.EmployeeRepository
	recognizer recognizer.Client
	uploadDir  string
}

func NewEmployeeHandler(repo repository.EmployeeRepository, recognizerClient recognizer.Client, uploadDir string) *EmployeeHandler {
	return &EmployeeHandler{repo: repo, recognizer: recognizerClient, uploadDir: uploadDir}
}

type EmployeeRequest struct {
	Name           string `json:"name"`
	EmployeeNumber string `json:"employee_number"`
	Department     string `json:"department"`
	Email          string `json:"email"`
}

func (h *EmployeeHandler) GetAll(c *fiber.Ctx) error {
	employees, err := h.repo.GetAll(c.Query("search"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch employees"})
	}
	return c.JSON(fiber.Map{"message": "Employees fetched", "data": employees})
}

func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee id"})
	}

	employee, err := h.repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch employee"})
	}
	return c.JSON(fiber.Map{"message": "Employee fetched", "data": employee})
}

func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" || req.EmployeeNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and employee_number are required"})
	}

	employee := model.Employee{
		Name:           req.Name,
		EmployeeNumber: req.EmployeeNumber,
		Department:     req.Department,
		Email:          req.Email,
	}
	if err := h.repo.Create(&employee); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "employee_number already registered"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create employee"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Employee created", "data": employee})
}

func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee id"})
	}

	employee, err := h.repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch employee"})
	}

	var req EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Name != "" {
		employee.Name = req.Name
	}
	if req.EmployeeNumber != "" {
		employee.EmployeeNumber = req.EmployeeNumber
	}
	if req.Department != "" {
		employee.Department = req.Department
	}
	if req.Email != "" {
		employee.Email = req.Email
	}

	if err := h.repo.Update(employee); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update employee"})
	}
	return c.JSON(fiber.Map{"message": "Employee updated", "data": employee})
}

func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee id"})
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete employee"})
	}
	return c.JSON(fiber.Map{"message": "Employee deleted"})
}

// EnrollFace uploads a reference photo, forwards it to the face service and
// marks the employee as enrolled once the service acknowledges it.
func (h *EmployeeHandler) EnrollFace(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee id"})
	}

	employee, err := h.repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch employee"})
	}

	// 1. Read the uploaded photo
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

	// 2. Forward to the face service
	if err := h.recognizer.Enroll(c.UserContext(), employee.EmployeeNumber, employee.Name, image, fileHeader.Filename); err != nil {
		if errors.Is(err, recognizer.ErrUnavailable) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Face recognition service unavailable, try again later"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Enrollment failed: " + err.Error()})
	}

	// 3. Keep a copy of the photo and flip the enrolled flag
	filename := fmt.Sprintf("%s%s", employee.EmployeeNumber, filepath.Ext(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, filepath.Join(h.uploadDir, filename)); err == nil {
		employee.Photo = filename
	}
	employee.FaceEnrolled = true
	if err := h.repo.Update(employee); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Enrolled but failed to update employee"})
	}

	return c.JSON(fiber.Map{"message": "Face enrolled", "data": employee})
}
