// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// document paths, chat providers, snapshots, and server behavior.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ServerName      string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir string // Data directory for SQLite database and JSON exports

	// Source Documents
	HandbookPath string // Module handbook (PDF, HTML, or plain text)
	SchedulePath string // Class schedule (PDF, HTML, or plain text)

	// LLM Configuration
	LLMEnabled   bool
	LLMProviders []string // Provider order, e.g. ["ollama", "groq", "gemini"]
	LLMTimeout   time.Duration

	OllamaBaseURL    string
	OllamaChatModels []string
	GroqAPIKey       string
	GroqChatModels   []string
	GeminiAPIKey     string
	GeminiChatModels []string

	// Retrieval Configuration
	RAGTopK int // Handbook segments fed to the LLM per question

	// Rate Limiting
	ChatRateLimitPerMin int // Chat requests per client per minute, 0 disables

	// R2 Snapshot Configuration
	R2Enabled         bool
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2SnapshotKey     string

	// Sentry Configuration
	SentryEnabled     bool
	SentryDSN         string
	SentryEnvironment string
	SentryRelease     string
	SentrySampleRate  float64

	// Metrics Authentication
	MetricsAuthEnabled bool
	MetricsUsername    string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword    string // Password for /metrics endpoint Basic Auth (empty = no auth)
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		// Server Configuration
		Port:            getEnv(EnvPort, "10000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ServerName:      getEnv(EnvServerName, "advisor"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 30*time.Second),

		// Data Configuration
		DataDir: getEnv(EnvDataDir, getDefaultDataDir()),

		// Source Documents
		HandbookPath: getEnv(EnvHandbookPath, "documents/module_handbook.pdf"),
		SchedulePath: getEnv(EnvSchedulePath, "documents/class_schedule.pdf"),

		// LLM Configuration
		LLMEnabled:   getBoolEnv(EnvLLMEnabled, true),
		LLMProviders: getListEnv(EnvLLMProviders, []string{"ollama", "gemini"}),
		LLMTimeout:   getDurationEnv(EnvLLMTimeout, 60*time.Second),

		OllamaBaseURL:    getEnv(EnvOllamaBaseURL, "http://localhost:11434/v1"),
		OllamaChatModels: getListEnv(EnvOllamaChatModels, []string{"qwen2.5:3b"}),
		GroqAPIKey:       getEnv(EnvGroqAPIKey, ""),
		GroqChatModels:   getListEnv(EnvGroqChatModels, []string{"llama-3.1-8b-instant"}),
		GeminiAPIKey:     getEnv(EnvGeminiAPIKey, ""),
		GeminiChatModels: getListEnv(EnvGeminiChatModels, []string{"gemini-2.0-flash"}),

		// Retrieval Configuration
		RAGTopK: getIntEnv(EnvRAGTopK, 3),

		// Rate Limiting
		ChatRateLimitPerMin: getIntEnv(EnvChatRateLimit, 20),

		// R2 Snapshot Configuration
		R2Enabled:         getBoolEnv(EnvR2Enabled, false),
		R2AccountID:       getEnv(EnvR2AccountID, ""),
		R2AccessKeyID:     getEnv(EnvR2AccessKeyID, ""),
		R2SecretAccessKey: getEnv(EnvR2SecretAccessKey, ""),
		R2BucketName:      getEnv(EnvR2BucketName, ""),
		R2SnapshotKey:     getEnv(EnvR2SnapshotKey, "advisor/advisor.db.zst"),

		// Sentry Configuration
		SentryEnabled:     getBoolEnv(EnvSentryEnabled, false),
		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentryRelease:     getEnv(EnvSentryRelease, ""),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		// Metrics Authentication
		MetricsAuthEnabled: getBoolEnv(EnvMetricsAuthEnabled, false),
		MetricsUsername:    getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword:    getEnv(EnvMetricsPassword, ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New(EnvDataDir+" is required"))
	}
	if c.HandbookPath == "" {
		errs = append(errs, errors.New(EnvHandbookPath+" is required"))
	}
	if c.SchedulePath == "" {
		errs = append(errs, errors.New(EnvSchedulePath+" is required"))
	}
	if c.RAGTopK <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvRAGTopK, c.RAGTopK))
	}
	if c.ChatRateLimitPerMin < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", EnvChatRateLimit, c.ChatRateLimitPerMin))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvShutdownTimeout, c.ShutdownTimeout))
	}
	for _, p := range c.LLMProviders {
		switch p {
		case "ollama", "groq", "gemini":
		default:
			errs = append(errs, fmt.Errorf("%s holds unknown provider %q", EnvLLMProviders, p))
		}
	}
	if c.R2Enabled {
		if c.R2AccountID == "" || c.R2AccessKeyID == "" || c.R2SecretAccessKey == "" || c.R2BucketName == "" {
			errs = append(errs, errors.New("R2 snapshots enabled but credentials incomplete"))
		}
	}
	if c.SentryEnabled && c.SentryDSN == "" {
		errs = append(errs, errors.New(EnvSentryDSN+" is required when Sentry is enabled"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getBoolEnv retrieves boolean environment variable with fallback to default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getListEnv retrieves a comma-separated environment variable with fallback
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

// getDefaultDataDir returns platform-specific default data directory
func getDefaultDataDir() string {
	if runtime.GOOS == "windows" {
		return "./data"
	}
	return "/data"
}

// SQLitePath returns the full path to the SQLite database file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "advisor.db")
}

// ModuleMapPath returns the path of the module map JSON export
func (c *Config) ModuleMapPath() string {
	return filepath.Join(c.DataDir, "module_map.json")
}

// ScheduleJSONPath returns the path of the schedule JSON export
func (c *Config) ScheduleJSONPath() string {
	return filepath.Join(c.DataDir, "class_schedule.json")
}

// HasChatProvider returns true if at least one chat provider is usable.
func (c *Config) HasChatProvider() bool {
	for _, p := range c.LLMProviders {
		switch p {
		case "ollama":
			if c.OllamaBaseURL != "" {
				return true
			}
		case "groq":
			if c.GroqAPIKey != "" {
				return true
			}
		case "gemini":
			if c.GeminiAPIKey != "" {
				return true
			}
		}
	}
	return false
}
