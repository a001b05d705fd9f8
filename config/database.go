package config

import (
	"fmt"

	"face-attendance-backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB(cfg *Config) {
	// Format: user:password@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	// TranslateError so a duplicate key on (employee_id, date) comes back as
	// gorm.ErrDuplicatedKey instead of a raw mysql error number.
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect to database: " + err.Error())
	}

	fmt.Println("Database connected!")

	// Auto Migration: creates tables from the structs in internal/model
	db.AutoMigrate(&model.User{})
	db.AutoMigrate(&model.Employee{})
	db.AutoMigrate(&model.Attendance{})

	DB = db
}
