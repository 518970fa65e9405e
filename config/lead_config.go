package config

import (
	"os"
	"runtime"
	"strconv"
)

// Config holds process-level settings read from the environment.
// Market configuration (weights, keyword sets, thresholds) is a separate,
// per-market document; see lead_market_config.go.
type Config struct {
	Environment string
	LogLevel    string

	// Batch
	WorkerCount int

	// Paths
	MarketConfigPath string
	InputPath        string
	ReportDir        string
}

func Load() (*Config, error) {
	return &Config{
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		WorkerCount: getEnvInt("WORKER_COUNT", runtime.NumCPU()),

		MarketConfigPath: getEnv("MARKET_CONFIG", "market.yaml"),
		InputPath:        getEnv("INPUT_PATH", ""),
		ReportDir:        getEnv("REPORT_DIR", "reports"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
