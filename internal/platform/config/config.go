package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSheets   = "sheets"
)

type Config struct {
	Addr                  string
	Environment           string
	TableBackend          string
	DatabaseURL           string
	MigrationsDir         string
	RunMigrations         bool
	SheetsCredentialsFile string
	SheetsSpreadsheetID   string
	JWTSecret             string
	TokenTTL              time.Duration
	AuthUsers             string
	LoginRatePerMinute    int
	LoginBurst            int
	CORSAllowedOrigins    []string
	TrustedProxies        []string
	MetricsEnabled        bool
	RequestTimeout        time.Duration
	LogLevel              slog.Level
}

// Load reads the process environment, after merging a .env file when one exists.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:                  getEnv("APP_ADDR", ":8080"),
		Environment:           getEnv("APP_ENV", "development"),
		TableBackend:          strings.ToLower(getEnv("TABLE_BACKEND", BackendMemory)),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		MigrationsDir:         getEnv("MIGRATIONS_DIR", "migrations"),
		RunMigrations:         getEnvBool("RUN_MIGRATIONS", true),
		SheetsCredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", "credentials.json"),
		SheetsSpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		TokenTTL:              getEnvDuration("TOKEN_TTL", 8*time.Hour),
		AuthUsers:             getEnv("AUTH_USERS", ""),
		LoginRatePerMinute:    getEnvInt("LOGIN_RATE_PER_MINUTE", 10),
		LoginBurst:            getEnvInt("LOGIN_BURST", 5),
		CORSAllowedOrigins:    getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		TrustedProxies:        getEnvList("TRUSTED_PROXIES", nil),
		MetricsEnabled:        getEnvBool("METRICS_ENABLED", true),
		RequestTimeout:        getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		LogLevel:              getEnvLevel("LOG_LEVEL", slog.LevelInfo),
	}
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

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return fallback
	}
	return level
}

func (c Config) Validate() error {
	switch c.TableBackend {
	case BackendMemory:
	case BackendPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required when TABLE_BACKEND is postgres")
		}
	case BackendSheets:
		if strings.TrimSpace(c.SheetsSpreadsheetID) == "" {
			return fmt.Errorf("SHEETS_SPREADSHEET_ID is required when TABLE_BACKEND is sheets")
		}
		if strings.TrimSpace(c.SheetsCredentialsFile) == "" {
			return fmt.Errorf("SHEETS_CREDENTIALS_FILE is required when TABLE_BACKEND is sheets")
		}
	default:
		return fmt.Errorf("TABLE_BACKEND must be one of memory, postgres, sheets")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Environment == "production" && len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
	}
	if strings.TrimSpace(c.AuthUsers) == "" {
		return fmt.Errorf("AUTH_USERS must list at least one user")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.LoginRatePerMinute <= 0 || c.LoginBurst <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE and LOGIN_BURST must be positive")
	}
	return nil
}
