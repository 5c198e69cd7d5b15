package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig limits requests to the auth endpoints per client IP
type RateLimitConfig struct {
	AuthPerMinute int
	AuthBurst     int
}

// loadDotEnv reads .env when present. A missing file is not an error.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	return nil
}

// Load reads the API server configuration.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	config := &Config{}

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "ems"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	authRate, err := getEnvInt("AUTH_RATE_LIMIT", 20)
	if err != nil {
		return nil, err
	}
	authBurst, err := getEnvInt("AUTH_RATE_BURST", 5)
	if err != nil {
		return nil, err
	}
	config.RateLimit = RateLimitConfig{AuthPerMinute: authRate, AuthBurst: authBurst}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.RateLimit.AuthPerMinute <= 0 || c.RateLimit.AuthBurst <= 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT and AUTH_RATE_BURST must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// ConsoleConfig configures the emsctl administrative console.
type ConsoleConfig struct {
	APIURL          string
	SessionFile     string
	ExportDir       string
	RefreshInterval time.Duration
	HTTPTimeout     time.Duration
	LogLevel        string
}

// LoadConsole reads the console configuration.
func LoadConsole() (*ConsoleConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	refresh, err := getEnvDuration("EMS_REFRESH_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	timeout, err := getEnvDuration("EMS_HTTP_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	config := &ConsoleConfig{
		APIURL:          strings.TrimRight(getEnv("EMS_API_URL", "http://localhost:8080"), "/"),
		SessionFile:     getEnv("EMS_SESSION_FILE", defaultSessionFile()),
		ExportDir:       getEnv("EMS_EXPORT_DIR", "."),
		RefreshInterval: refresh,
		HTTPTimeout:     timeout,
		LogLevel:        getEnv("EMS_LOG_LEVEL", "warn"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func (c *ConsoleConfig) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("EMS_API_URL is required")
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("EMS_REFRESH_INTERVAL must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("EMS_HTTP_TIMEOUT must be positive")
	}
	return nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ems-session.json"
	}
	return filepath.Join(home, ".ems", "session.json")
}

// ParseLogLevel maps debug/info/warn/error onto slog levels, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
