package database

import (
	"log"

	"face-attendance-backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedAll(db *gorm.DB) {
	// 1. First admin account
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash seed password: ", err)
	}
	admin := model.User{
		Name:     "Administrator",
		Username: "admin",
		Password: string(hashedPassword),
	}
	db.FirstOrCreate(&admin, model.User{Username: admin.Username})

	// 2. Sample employees, not yet face-enrolled
	employees := []model.Employee{
		{Name: "Arif Rahman", EmployeeNumber: "EMP-0001", Department: "Engineering", Email: "arif@example.com"},
		{Name: "Siti Nurhaliza", EmployeeNumber: "EMP-0002", Department: "Finance", Email: "siti@example.com"},
		{Name: "Budi Santoso", EmployeeNumber: "EMP-0003", Department: "Operations", Email: "budi@example.com"},
	}
	for _, e := range employees {
		db.FirstOrCreate(&e, model.Employee{EmployeeNumber: e.EmployeeNumber})
	}
}
