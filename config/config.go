package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings for the analysis API.
type Config struct {
	DatabaseURL   string
	Port          int
	UploadDir     string
	MaxUploadMB   int
	JWTSecret     string
	AuthRequired  bool
	AdminUser     string
	AdminPassword string
	DefaultLimit  int
}

// Load reads configuration from environment variables (optionally .env).
// DATABASE_URL is optional: without it the service runs on in-memory stores.
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:          8080,
		UploadDir:     "uploads",
		MaxUploadMB:   16,
		AdminUser:     "admin",
		AdminPassword: "password123",
		DefaultLimit:  200,
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
		cfg.Port = port
	}

	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		cfg.UploadDir = dir
	}

	if mbStr := os.Getenv("MAX_UPLOAD_MB"); mbStr != "" {
		mb, err := strconv.Atoi(mbStr)
		if err != nil || mb <= 0 {
			return cfg, fmt.Errorf("invalid MAX_UPLOAD_MB: %s", mbStr)
		}
		cfg.MaxUploadMB = mb
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")

	if reqStr := os.Getenv("AUTH_REQUIRED"); reqStr != "" {
		req, err := strconv.ParseBool(reqStr)
		if err != nil {
			return cfg, fmt.Errorf("invalid AUTH_REQUIRED: %s", reqStr)
		}
		cfg.AuthRequired = req
	}
	if cfg.AuthRequired && cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("AUTH_REQUIRED is set but JWT_SECRET is empty")
	}

	if user := os.Getenv("ADMIN_USER"); user != "" {
		cfg.AdminUser = user
	}
	if pass := os.Getenv("ADMIN_PASSWORD"); pass != "" {
		cfg.AdminPassword = pass
	}

	if limitStr := os.Getenv("API_DEFAULT_LIMIT"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			return cfg, fmt.Errorf("invalid API_DEFAULT_LIMIT: %s", limitStr)
		}
		cfg.DefaultLimit = limit
	}

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// MaxUploadBytes converts the upload limit to bytes.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
