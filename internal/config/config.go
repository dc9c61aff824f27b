package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const (
	DefaultModelName   = "gpt-3.5-turbo"
	DefaultTemperature = 0.4
	DefaultWorldFile   = "worlds/museum.yaml"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Completion service
	OpenAIKey   string
	OpenAIURL   string // empty means the public OpenAI endpoint
	ModelName   string
	Temperature float64
	Enabled     bool // false disables outbound completion calls entirely

	// Agent
	AgentName     string
	WorldFile     string
	MaxLogEntries int // context window cap, in log entries
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", "info")),
		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIURL:     getEnv("OPENAI_URL", ""),
		ModelName:     getEnv("MODEL_NAME", DefaultModelName),
		Temperature:   getEnvFloat("TEMPERATURE", DefaultTemperature),
		Enabled:       getEnvBool("LLM_ENABLED", true),
		AgentName:     getEnv("AGENT_NAME", ""),
		WorldFile:     getEnv("WORLD_FILE", DefaultWorldFile),
		MaxLogEntries: getEnvInt("MAX_LOG_ENTRIES", 0), // 0 falls back to the chat default
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
