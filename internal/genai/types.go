// Package genai provides integration with LLM chat APIs (Ollama, Groq, and
// Gemini). This file contains shared types, interfaces, and configuration
// for answer generation with multi-provider fallback support.
//
// Architecture:
// - Ollama/Groq: Uses github.com/openai/openai-go/v3 (OpenAI-compatible API)
// - Gemini: Uses google.golang.org/genai (official SDK)
//
// Fallback Strategy (3-layer):
// 1. Model Retry: Same model retried with exponential backoff
// 2. Model Chain: Next model in same provider's model list
// 3. Provider Chain: Next provider in the configured provider list
package genai

import (
	"context"
	"time"
)

// Provider represents an LLM provider.
type Provider string

const (
	// ProviderOllama represents a local or self-hosted Ollama server
	// (OpenAI-compatible API under /v1).
	ProviderOllama Provider = "ollama"
	// ProviderGroq represents Groq's API (OpenAI-compatible, fast inference).
	ProviderGroq Provider = "groq"
	// ProviderGemini represents Google's Gemini API (non-OpenAI-compatible).
	ProviderGemini Provider = "gemini"
)

// GroqEndpoint is the fixed base URL for Groq's OpenAI-compatible API.
// Ollama has no fixed endpoint; its base URL comes from configuration.
const GroqEndpoint = "https://api.groq.com/openai/v1/"

// String returns the string representation of the provider.
func (p Provider) String() string {
	return string(p)
}

// Role identifies the author of a chat message.
type Role string

// Chat message roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatProvider defines the interface for answer generation.
// Implementations include OpenAI-compatible providers (Ollama, Groq) and
// Gemini (native SDK).
type ChatProvider interface {
	// Chat sends the conversation and returns the assistant's reply.
	Chat(ctx context.Context, messages []Message) (string, error)
	// IsEnabled returns true if the provider is properly initialized.
	IsEnabled() bool
	// Close releases any resources held by the provider.
	Close() error
	// Provider returns the provider type for metrics.
	Provider() Provider
}

// RetryConfig defines retry behavior for LLM API calls.
// Uses AWS-recommended Full Jitter exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	// Default: 2 (1 initial + 1 retry)
	MaxAttempts int

	// InitialDelay is the base delay before first retry.
	// Default: 500ms
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between retries.
	// Default: 3s
	MaxDelay time.Duration
}

// ProviderConfig holds configuration for a single chat provider.
type ProviderConfig struct {
	// APIKey is the API key for the provider. Ollama servers usually
	// accept any non-empty key.
	APIKey string

	// BaseURL overrides the provider endpoint. Required for Ollama,
	// ignored for Gemini.
	BaseURL string

	// Models is the ordered list of chat models.
	// First model is primary, rest are fallbacks tried in order.
	Models []string
}

// ChatConfig holds configuration for all chat providers.
type ChatConfig struct {
	// Providers is the ordered list of providers to try.
	// Fallback happens in order: first provider's models, then second, etc.
	Providers []Provider

	// Ollama configuration (OpenAI-compatible, custom base URL)
	Ollama ProviderConfig

	// Groq configuration (OpenAI-compatible)
	Groq ProviderConfig

	// Gemini configuration
	Gemini ProviderConfig

	// RetryConfig for retry behavior
	RetryConfig RetryConfig
}

// Default model configurations.
// First element is primary model, subsequent elements are fallbacks.
var (
	// DefaultOllamaChatModels is the default model chain for Ollama.
	// qwen2.5:3b is small enough for campus hardware yet follows the
	// structured-context prompts reliably.
	DefaultOllamaChatModels = []string{"qwen2.5:3b"}

	// DefaultGroqChatModels is the default model chain for Groq.
	// llama-3.3-70b-versatile offers strong instruction following;
	// llama-3.1-8b-instant is the fast fallback.
	DefaultGroqChatModels = []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant"}

	// DefaultGeminiChatModels is the default model chain for Gemini.
	DefaultGeminiChatModels = []string{"gemini-2.0-flash", "gemini-2.0-flash-lite"}

	// DefaultProviders is the default provider order for fallback.
	DefaultProviders = []Provider{ProviderOllama, ProviderGemini}
)

// Retry configuration defaults
const (
	DefaultMaxRetryAttempts  = 2
	DefaultInitialRetryDelay = 500 * time.Millisecond
	DefaultMaxRetryDelay     = 3 * time.Second
)

// DefaultRetryConfig returns the standard retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  DefaultMaxRetryAttempts,
		InitialDelay: DefaultInitialRetryDelay,
		MaxDelay:     DefaultMaxRetryDelay,
	}
}

// HasProvider returns true if the specified provider is usable.
func (c *ChatConfig) HasProvider(p Provider) bool {
	switch p {
	case ProviderOllama:
		return c.Ollama.BaseURL != ""
	case ProviderGroq:
		return c.Groq.APIKey != ""
	case ProviderGemini:
		return c.Gemini.APIKey != ""
	default:
		return false
	}
}

// GetProviderConfig returns the configuration for a specific provider.
func (c *ChatConfig) GetProviderConfig(p Provider) *ProviderConfig {
	switch p {
	case ProviderOllama:
		return &c.Ollama
	case ProviderGroq:
		return &c.Groq
	case ProviderGemini:
		return &c.Gemini
	default:
		return nil
	}
}

// ConfiguredProviders returns the list of usable providers, in the order
// specified by c.Providers.
func (c *ChatConfig) ConfiguredProviders() []Provider {
	result := make([]Provider, 0, len(c.Providers))
	for _, p := range c.Providers {
		if c.HasProvider(p) {
			result = append(result, p)
		}
	}
	return result
}
