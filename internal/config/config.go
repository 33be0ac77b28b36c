package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	FCM      FCMConfig
	Fanout   FanoutConfig
	Redis    RedisConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// FCMConfig holds the push provider configuration. Endpoint is only set in
// tests to point the client at a local server.
type FCMConfig struct {
	CredentialsFile string
	ProjectID       string
	Endpoint        string
	Timeout         time.Duration
}

// FanoutConfig bounds the per-recipient dispatch concurrency
type FanoutConfig struct {
	Concurrency int
}

// RedisConfig holds the optional suppression list configuration. An empty
// URL disables the suppression list entirely.
type RedisConfig struct {
	URL            string
	SuppressionTTL time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "mamacare-notify"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Push provider configuration
	pushTimeout, err := getEnvAsDuration("PUSH_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	config.FCM = FCMConfig{
		CredentialsFile: getEnv("FCM_CREDENTIALS_FILE", ""),
		ProjectID:       getEnv("FCM_PROJECT_ID", ""),
		Endpoint:        getEnv("FCM_ENDPOINT", ""),
		Timeout:         pushTimeout,
	}

	// Fanout configuration
	concurrency, err := getEnvAsInt("FANOUT_CONCURRENCY", 8)
	if err != nil {
		return nil, err
	}
	if concurrency < 1 {
		return nil, fmt.Errorf("FANOUT_CONCURRENCY must be at least 1")
	}

	config.Fanout = FanoutConfig{
		Concurrency: concurrency,
	}

	// Suppression list configuration (optional)
	suppressionTTL, err := getEnvAsDuration("SUPPRESSION_TTL", "720h")
	if err != nil {
		return nil, err
	}

	config.Redis = RedisConfig{
		URL:            getEnv("REDIS_URL", ""),
		SuppressionTTL: suppressionTTL,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate collects every missing required variable into a single error so
// a misconfigured deployment fails with the full list at once.
func (c *Config) Validate() error {
	var missing []string

	if c.Database.Password == "" {
		missing = append(missing, "DB_PASSWORD")
	}
	if c.FCM.CredentialsFile == "" {
		missing = append(missing, "FCM_CREDENTIALS_FILE")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
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

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
