package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string

	DatabaseDriver      string
	DatabaseURL         string
	DatabaseAutoMigrate bool

	UploadDir     string
	PublicBaseURL string

	MaxUploadBytes          int64
	DefaultMaxPhotosPerUser int

	LogLevel  string
	LogFormat string

	EnableLiveFeed bool
	EnableSwagger  bool
}

// Load reads the process environment. A .env file in the working directory
// is applied first when present; real environment variables win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "photocontest"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	driver := strings.ToLower(strings.TrimSpace(os.Getenv("DATABASE_DRIVER")))
	if driver == "" {
		driver = DriverPostgres
	}
	if driver != DriverPostgres && driver != DriverSQLite {
		return Config{}, fmt.Errorf("DATABASE_DRIVER must be %q or %q", DriverPostgres, DriverSQLite)
	}

	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		dsn = strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	baseURL := strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/")
	if baseURL == "" {
		baseURL = "/uploads"
	}

	maxUpload, err := envInt64("MAX_UPLOAD_BYTES", 10<<20)
	if err != nil {
		return Config{}, err
	}
	maxPhotos, err := envInt("DEFAULT_MAX_PHOTOS_PER_USER", 5)
	if err != nil {
		return Config{}, err
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,

		DatabaseDriver:      driver,
		DatabaseURL:         dsn,
		DatabaseAutoMigrate: envBool("DATABASE_AUTO_MIGRATE", true),

		UploadDir:     uploadDir,
		PublicBaseURL: baseURL,

		MaxUploadBytes:          maxUpload,
		DefaultMaxPhotosPerUser: maxPhotos,

		LogLevel:  strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))),
		LogFormat: strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT"))),

		EnableLiveFeed: envBool("ENABLE_LIVE_FEED", true),
		EnableSwagger:  envBool("ENABLE_SWAGGER", true),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envInt(name string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return value, nil
}

func envInt64(name string, fallback int64) (int64, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return value, nil
}
