package model

import "gorm.io/gorm"

// User is an admin account for the management endpoints. Employees never
// log in themselves, they are identified at the kiosk by face.
type User struct {
	gorm.Model
	Name     string `json:"name"`
	Username string `json:"username" gorm:"column:username;unique;not null"`
	Password string `json:"-"`
}
