// Package genai provides integration with LLM chat APIs.
// This file contains the unified OpenAI-compatible chat implementation.
// It works with any OpenAI-compatible provider (Ollama, Groq) via custom BaseURL.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openaiChatProvider generates answers through an OpenAI-compatible API.
// It implements the ChatProvider interface.
type openaiChatProvider struct {
	client   openai.Client
	models   []string
	provider Provider
}

// newOpenAIChatProvider creates a new OpenAI-compatible chat provider.
// Returns nil if the provider is not configured (no base URL for Ollama,
// no API key for Groq).
func newOpenAIChatProvider(provider Provider, cfg *ProviderConfig) (*openaiChatProvider, error) {
	baseURL := cfg.BaseURL
	apiKey := cfg.APIKey

	switch provider {
	case ProviderOllama:
		if baseURL == "" {
			return nil, nil //nolint:nilnil // Intentional: feature disabled when unconfigured
		}
		// Ollama ignores the key but the client requires one
		if apiKey == "" {
			apiKey = "ollama"
		}
	case ProviderGroq:
		if apiKey == "" {
			return nil, nil //nolint:nilnil // Intentional: feature disabled when unconfigured
		}
		if baseURL == "" {
			baseURL = GroqEndpoint
		}
	default:
		return nil, fmt.Errorf("unsupported OpenAI-compatible provider: %s", provider)
	}

	models := cfg.Models
	if len(models) == 0 {
		switch provider {
		case ProviderOllama:
			models = DefaultOllamaChatModels
		case ProviderGroq:
			models = DefaultGroqChatModels
		}
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &openaiChatProvider{
		client:   client,
		models:   models,
		provider: provider,
	}, nil
}

// Chat sends the conversation and returns the assistant's reply.
// Models are tried in configuration order; a permanent error on one model
// moves to the next instead of aborting the provider.
func (p *openaiChatProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	if p == nil {
		return "", errors.New("chat provider not configured")
	}

	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			params = append(params, openai.SystemMessage(m.Content))
		case RoleAssistant:
			params = append(params, openai.AssistantMessage(m.Content))
		default:
			params = append(params, openai.UserMessage(m.Content))
		}
	}

	var lastErr error
	for _, model := range p.models {
		start := time.Now()
		resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:       model,
			Messages:    params,
			Temperature: openai.Float(0.3), // Low temperature keeps answers anchored to the context
		})
		duration := time.Since(start)

		if err != nil {
			slog.WarnContext(ctx, "chat completion failed",
				"provider", p.provider,
				"model", model,
				"duration_ms", duration.Milliseconds(),
				"error", err)
			lastErr = fmt.Errorf("chat completion failed: %w", err)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return "", lastErr
			}
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("model %s returned no choices", model)
			continue
		}

		answer := strings.TrimSpace(resp.Choices[0].Message.Content)
		if answer == "" {
			lastErr = fmt.Errorf("model %s returned empty content", model)
			continue
		}

		if resp.Usage.TotalTokens > 0 {
			slog.DebugContext(ctx, "chat completion succeeded",
				"provider", p.provider,
				"model", model,
				"input_tokens", resp.Usage.PromptTokens,
				"output_tokens", resp.Usage.CompletionTokens,
				"duration_ms", duration.Milliseconds())
		}
		return answer, nil
	}

	return "", lastErr
}

// IsEnabled returns true if the provider is properly initialized.
func (p *openaiChatProvider) IsEnabled() bool {
	return p != nil && len(p.models) > 0
}

// Provider returns the provider type.
func (p *openaiChatProvider) Provider() Provider {
	if p == nil {
		return ""
	}
	return p.provider
}

// Close releases resources.
// Safe to call on nil receiver.
func (p *openaiChatProvider) Close() error {
	if p == nil {
		return nil
	}
	// openai-go client doesn't require cleanup
	return nil
}
