// Package config provides configuration for the intake bot.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the intake bot configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// LLM settings (OpenAI-compatible endpoint)
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration

	// GitHub settings
	GitHubToken string
	GitHubRepo  string // "owner/name"
	BaseBranch  string
	ConfigDir   string // repo path where intake YAML files land

	// Timeouts
	RequestTimeout time.Duration
}

// Load loads configuration from the environment. A .env file in the
// working directory is read first if present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:       getEnvInt("HTTP_PORT", 8000),
		DatabaseURL:    getEnv("DATABASE_URL", "file:intakebot.db?cache=shared&mode=rwc"),
		LLMBaseURL:     getEnv("LLM_BASE_URL", "https://api.groq.com/openai"),
		LLMAPIKey:      getEnv("GROQ_API_KEY", ""),
		LLMModel:       getEnv("LLM_MODEL", "llama-3.1-8b-instant"),
		LLMTimeout:     time.Duration(getEnvInt("LLM_TIMEOUT_MS", 60000)) * time.Millisecond,
		GitHubToken:    getEnv("GITHUB_TOKEN", ""),
		GitHubRepo:     getEnv("REPO_NAME", ""),
		BaseBranch:     getEnv("BASE_BRANCH", "dev"),
		ConfigDir:      getEnv("INTAKE_CONFIG_DIR", "intake_configs"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_MS", 30000)) * time.Millisecond,
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
