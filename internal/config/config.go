package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port          string
	SessionSecret string
	Domain        string
	Database      DatabaseConfig
	QRDir         string
	PDFDir        string
	JPEGDir       string

	// ScanValidation rejects customer scans whose batch is not registered.
	// Off by default: scans are permissive logging.
	ScanValidation bool

	Admin AdminConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// AdminConfig holds the seed credential created on first start
type AdminConfig struct {
	Username string
	Password string
	Code     string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	return &Config{
		Port:          getEnv("PORT", "3000"),
		SessionSecret: secret,
		Domain:        getEnv("DOMAIN", "http://localhost:3000"),
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "batchtrack"),
		},
		QRDir:          getEnv("QR_DIR", "qrImages"),
		PDFDir:         getEnv("PDF_DIR", "public/product_pdf"),
		JPEGDir:        getEnv("JPEG_DIR", "public/product_jpeg"),
		ScanValidation: getEnv("SCAN_BATCH_VALIDATION", "false") == "true",
		Admin: AdminConfig{
			Username: os.Getenv("ADMIN_USERNAME"),
			Password: os.Getenv("ADMIN_PASSWORD"),
			Code:     os.Getenv("ADMIN_CODE"),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
