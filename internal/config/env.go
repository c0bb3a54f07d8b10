// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "ADVISOR_PORT"
	EnvLogLevel        = "ADVISOR_LOG_LEVEL"
	EnvShutdownTimeout = "ADVISOR_SHUTDOWN_TIMEOUT"
	EnvServerName      = "ADVISOR_SERVER_NAME"

	// Data
	EnvDataDir = "ADVISOR_DATA_DIR"

	// Documents
	EnvHandbookPath = "ADVISOR_HANDBOOK_PATH"
	EnvSchedulePath = "ADVISOR_SCHEDULE_PATH"

	// LLM Feature
	EnvLLMEnabled       = "ADVISOR_LLM_ENABLED"
	EnvLLMProviders     = "ADVISOR_LLM_PROVIDERS"
	EnvLLMTimeout       = "ADVISOR_LLM_TIMEOUT"
	EnvOllamaBaseURL    = "ADVISOR_OLLAMA_BASE_URL"
	EnvOllamaChatModels = "ADVISOR_OLLAMA_CHAT_MODELS"
	EnvGroqAPIKey       = "ADVISOR_GROQ_API_KEY"
	EnvGroqChatModels   = "ADVISOR_GROQ_CHAT_MODELS"
	EnvGeminiAPIKey     = "ADVISOR_GEMINI_API_KEY"
	EnvGeminiChatModels = "ADVISOR_GEMINI_CHAT_MODELS"

	// Retrieval
	EnvRAGTopK = "ADVISOR_RAG_TOP_K"

	// Rate limiting
	EnvChatRateLimit = "ADVISOR_CHAT_RATE_LIMIT"

	// R2 Snapshot Feature
	EnvR2Enabled         = "ADVISOR_R2_ENABLED"
	EnvR2AccountID       = "ADVISOR_R2_ACCOUNT_ID"
	EnvR2AccessKeyID     = "ADVISOR_R2_ACCESS_KEY_ID"
	EnvR2SecretAccessKey = "ADVISOR_R2_SECRET_ACCESS_KEY"
	EnvR2BucketName      = "ADVISOR_R2_BUCKET_NAME"
	EnvR2SnapshotKey     = "ADVISOR_R2_SNAPSHOT_KEY"

	// Sentry Feature
	EnvSentryEnabled     = "ADVISOR_SENTRY_ENABLED"
	EnvSentryDSN         = "ADVISOR_SENTRY_DSN"
	EnvSentryEnvironment = "ADVISOR_SENTRY_ENVIRONMENT"
	EnvSentryRelease     = "ADVISOR_SENTRY_RELEASE"
	EnvSentrySampleRate  = "ADVISOR_SENTRY_SAMPLE_RATE"

	// Metrics Auth Feature
	EnvMetricsAuthEnabled = "ADVISOR_METRICS_AUTH_ENABLED"
	EnvMetricsUsername    = "ADVISOR_METRICS_USERNAME"
	EnvMetricsPassword    = "ADVISOR_METRICS_PASSWORD"
)
