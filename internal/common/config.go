package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	OCR     OCRConfig
	Extract ExtractConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	CORSOrigins     []string
	MaxRequestsRate int // requests per second per IP
	MaxUploadBytes  int64
	ShutdownTimeout time.Duration
}

// OCRConfig holds OCR engine configuration
type OCRConfig struct {
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	Pdftoppm      string // binary name or absolute path; if empty -> "pdftoppm"
	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI for PDF pages, default 300
	MaxPages      int    // 0 = no limit
	PageWorkers   int    // concurrent page OCR workers, default 4
}

// ExtractConfig holds field-extraction behavior flags
type ExtractConfig struct {
	IncludeRawText   bool // include acquired text in the response envelope
	ValidateEnvelope bool // check assembled envelopes against the JSON schema
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8000"),
			CORSOrigins:     getEnvAsList("CORS_ORIGINS", []string{"*"}),
			MaxRequestsRate: getEnvAsInt("MAX_REQUESTS_PER_SECOND", 20),
			MaxUploadBytes:  getEnvAsInt64("MAX_UPLOAD_BYTES", 10<<20),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		OCR: OCRConfig{
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			DPI:           getEnvAsInt("OCR_DPI", 300),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 0),
			PageWorkers:   getEnvAsInt("OCR_PAGE_WORKERS", 4),
		},
		Extract: ExtractConfig{
			IncludeRawText:   getEnvAsBool("INCLUDE_RAW_TEXT", true),
			ValidateEnvelope: getEnvAsBool("VALIDATE_ENVELOPE", false),
		},
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_UPLOAD_BYTES must be positive", ErrInvalidInput)
	}
	if c.OCR.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_DPI must be positive", ErrInvalidInput)
	}
	if c.OCR.PageWorkers <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_PAGE_WORKERS must be positive", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
