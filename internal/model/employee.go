package model

import "gorm.io/gorm"

type Employee struct {
	gorm.Model
	Name           string `json:"name"`
	EmployeeNumber string `json:"employee_number" gorm:"column:employee_number;unique;not null"`
	Department     string `json:"department"`
	Email          string `json:"email"`
	Photo          string `json:"photo"`
	// Flipped to true after the face service acknowledges enrollment
	FaceEnrolled bool `json:"face_enrolled" gorm:"default:false"`

	Attendances []Attendance `json:"attendances,omitempty"`
}
