package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the collector process.
// Only this package reads environment variables.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Storage
	DataDir string

	// Collection
	RunInterval     time.Duration
	MarketHoursOnly bool
	IndexParamsPath string // optional YAML with per-index collection params

	// Provider
	ProviderRateLimit int // requests per second against the upstream data source

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
}

// Load reads configuration from environment variables, consulting a .env
// file when one is present.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "9108"),
		Env:  getEnv("ENV", "development"),

		DataDir: getEnv("G6_DATA_DIR", "data/g6_data"),

		RunInterval:     getEnvAsDuration("G6_RUN_INTERVAL", "60s"),
		MarketHoursOnly: getEnvAsBool("G6_MARKET_HOURS_ONLY", true),
		IndexParamsPath: getEnv("G6_INDEX_PARAMS", ""),

		ProviderRateLimit: getEnvAsInt("G6_PROVIDER_RATE_LIMIT", 10),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are sane
func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("G6_DATA_DIR must not be empty")
	}

	if c.RunInterval < time.Second {
		return fmt.Errorf("G6_RUN_INTERVAL must be at least 1s, got %s", c.RunInterval)
	}

	if c.ProviderRateLimit <= 0 {
		return fmt.Errorf("G6_PROVIDER_RATE_LIMIT must be positive, got %d", c.ProviderRateLimit)
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
