package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

type Config struct {
	Addr                  string
	Environment           string
	DatabaseURL           string
	JWTSecret             string
	AdminEmail            string
	AdminPasswordHash     string
	TokenTTL              time.Duration
	RunMigrations         bool
	SeedEmployees         int
	SeedAttendanceDays    int
	BudgetFile            string
	OutputDir             string
	ChartFont             string
	ReportAttendanceLimit int
	MetricsEnabled        bool
	MaxBodyBytes          int64
	RateLimitPerMinute    int
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Addr:                  getEnv("APP_ADDR", ":8080"),
		Environment:           getEnv("APP_ENV", "development"),
		DatabaseURL:           getEnv("DATABASE_URL", "sqlite:workforce.db"),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		AdminEmail:            getEnv("ADMIN_EMAIL", ""),
		AdminPasswordHash:     getEnv("ADMIN_PASSWORD_HASH", ""),
		TokenTTL:              getEnvDuration("TOKEN_TTL", 12*time.Hour),
		RunMigrations:         getEnvBool("RUN_MIGRATIONS", true),
		SeedEmployees:         getEnvInt("SEED_EMPLOYEES", 50),
		SeedAttendanceDays:    getEnvInt("SEED_ATTENDANCE_DAYS", 90),
		BudgetFile:            getEnv("BUDGET_FILE", ""),
		OutputDir:             getEnv("OUTPUT_DIR", "output"),
		ChartFont:             getEnv("CHART_FONT", ""),
		ReportAttendanceLimit: getEnvInt("REPORT_ATTENDANCE_LIMIT", 30),
		MetricsEnabled:        getEnvBool("METRICS_ENABLED", true),
		MaxBodyBytes:          int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
		RateLimitPerMinute:    getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}
}

// Backend derives the storage backend from the DATABASE_URL scheme.
func (c Config) Backend() string {
	url := strings.TrimSpace(c.DatabaseURL)
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return BackendPostgres
	case strings.HasPrefix(url, "sqlite:"):
		return BackendSQLite
	case url == "memory:":
		return BackendMemory
	default:
		return ""
	}
}

// SQLitePath is the file part of a sqlite: DATABASE_URL.
func (c Config) SQLitePath() string {
	return strings.TrimPrefix(strings.TrimSpace(c.DatabaseURL), "sqlite:")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Backend() == "" {
		return fmt.Errorf("DATABASE_URL must start with postgres://, sqlite: or be memory:")
	}
	if c.Backend() == BackendSQLite && c.SQLitePath() == "" {
		return fmt.Errorf("DATABASE_URL sqlite: needs a file path or :memory:")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.AdminEmail == "" || c.AdminPasswordHash == "" {
			return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD_HASH must be set in production")
		}
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.SeedEmployees < 0 {
		return fmt.Errorf("SEED_EMPLOYEES must not be negative")
	}
	if c.SeedAttendanceDays < 0 {
		return fmt.Errorf("SEED_ATTENDANCE_DAYS must not be negative")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if c.ReportAttendanceLimit < 0 {
		return fmt.Errorf("REPORT_ATTENDANCE_LIMIT must not be negative")
	}
	return nil
}
