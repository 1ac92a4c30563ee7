// Package config provides configuration for the scenario service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort     int
	RateLimitRPS float64

	// Database (generation telemetry only; scenarios are never persisted)
	DatabaseURL string

	// LLM backend
	LLMMode         string // "live" or "mock"
	LLMBaseURL      string
	LLMAPIKey       string
	LLMModel        string
	LLMTimeout      time.Duration
	MaxOutputTokens int
	Temperature     float64

	// Pricing, USD per million tokens
	PriceInPerMTok  float64
	PriceOutPerMTok float64

	// Generation pipeline
	GenerationTimeout time.Duration
	QueueDepth        int
	PromptMinChars    int
	PromptMaxChars    int

	// Schema cross-check
	SchemaPath string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:          getEnvInt("HTTP_PORT", 8080),
		RateLimitRPS:      getEnvFloat("RATE_LIMIT_RPS", 2),
		DatabaseURL:       getEnv("DATABASE_URL", "file:scenariod.db?cache=shared&mode=rwc"),
		LLMMode:           getEnv("LLM_MODE", "live"),
		LLMBaseURL:        getEnv("LLM_BASE_URL", "http://localhost:4000"),
		LLMAPIKey:         getEnv("LLM_API_KEY", ""),
		LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMTimeout:        time.Duration(getEnvInt("LLM_TIMEOUT_MS", 120000)) * time.Millisecond,
		MaxOutputTokens:   getEnvInt("LLM_MAX_OUTPUT_TOKENS", 8192),
		Temperature:       getEnvFloat("LLM_TEMPERATURE", 0.4),
		PriceInPerMTok:    getEnvFloat("PRICE_IN_PER_MTOK", 0.15),
		PriceOutPerMTok:   getEnvFloat("PRICE_OUT_PER_MTOK", 0.6),
		GenerationTimeout: time.Duration(getEnvInt("GENERATION_TIMEOUT_MS", 90000)) * time.Millisecond,
		QueueDepth:        getEnvInt("GENERATION_QUEUE_DEPTH", 16),
		PromptMinChars:    getEnvInt("PROMPT_MIN_CHARS", 8),
		PromptMaxChars:    getEnvInt("PROMPT_MAX_CHARS", 2000),
		SchemaPath:        getEnv("SCHEMA_PATH", "docs/scenario.schema.json"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}
