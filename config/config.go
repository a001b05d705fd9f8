package config

import (
	"os"
	"strconv"
	"time"

	"face-attendance-backend/internal/policy"
)

// Config holds everything that used to be scattered as literals: admission
// windows, the face service endpoint, DB credentials and the JWT secret.
// Loaded once at startup, passed down explicitly.
type Config struct {
	Port string

	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string

	JWTSecret string

	ClockInWindow  policy.Window
	ClockOutWindow policy.Window

	FaceAPIURL     string
	FaceAPITimeout time.Duration

	UploadDir string
}

func Load() *Config {
	return &Config{
		Port: GetEnv("PORT", "3000"),

		DBUser: GetEnv("DB_USER", "root"),
		DBPass: GetEnv("DB_PASS", ""),
		DBHost: GetEnv("DB_HOST", "127.0.0.1"),
		DBPort: GetEnv("DB_PORT", "3306"),
		DBName: GetEnv("DB_NAME", "face_attendance_db"),

		JWTSecret: GetEnv("JWT_SECRET", "change-me-in-production"),

		ClockInWindow: policy.Window{
			Start: GetEnv("CLOCK_IN_START", "09:30"),
			End:   GetEnv("CLOCK_IN_END", "09:45"),
		},
		ClockOutWindow: policy.Window{
			Start: GetEnv("CLOCK_OUT_START", "22:00"),
			End:   GetEnv("CLOCK_OUT_END", "22:30"),
		},

		FaceAPIURL:     GetEnv("FACE_API_URL", "http://127.0.0.1:5000"),
		FaceAPITimeout: time.Duration(GetEnvAsInt("FACE_API_TIMEOUT_SECONDS", 10)) * time.Second,

		UploadDir: GetEnv("UPLOAD_DIR", "./uploads"),
	}
}

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
