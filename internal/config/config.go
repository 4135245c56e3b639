package config

import (
	"fmt"
	"os"
	"strings"
)

const defaultCORSOrigins = "http://localhost:5173,http://localhost:3000"

type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// CORS
	CORSOrigins []string

	// Rate Limiting
	RateLimitRequests int
	RateLimitWindow   int
	RateLimitBurst    int

	// Features
	EnableMetrics bool

	// Content rendering
	ContentClassPrefix  string
	ReadTimeWPM         int
	MaxBlocksPerRequest int
	ExcerptLength       int
}

func New() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// CORS
		CORSOrigins: corsOrigins(getEnv("CORS_ORIGINS", defaultCORSOrigins)),

		// Rate Limiting
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 0),

		// Features
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),

		// Content rendering
		ContentClassPrefix:  getEnv("CONTENT_CLASS_PREFIX", "article"),
		ReadTimeWPM:         getEnvAsInt("READ_TIME_WPM", 200),
		MaxBlocksPerRequest: getEnvAsInt("MAX_BLOCKS_PER_REQUEST", 500),
		ExcerptLength:       getEnvAsInt("EXCERPT_LENGTH", 160),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

// corsOrigins never returns an empty list; a value made only of separators
// falls back to the defaults.
func corsOrigins(value string) []string {
	if origins := splitList(value); len(origins) > 0 {
		return origins
	}
	return splitList(defaultCORSOrigins)
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
