// Package genai provides integration with LLM chat APIs.
// This file contains the Gemini chat implementation.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiChatProvider generates answers through the Gemini API.
// It implements the ChatProvider interface.
type geminiChatProvider struct {
	client *genai.Client
	models []string
}

// newGeminiChatProvider creates a new Gemini-based chat provider.
// Returns nil if apiKey is empty (provider disabled).
func newGeminiChatProvider(ctx context.Context, cfg *ProviderConfig) (*geminiChatProvider, error) {
	if cfg.APIKey == "" {
		return nil, nil //nolint:nilnil // Intentional: feature disabled when no API key
	}

	models := cfg.Models
	if len(models) == 0 {
		models = DefaultGeminiChatModels
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiChatProvider{
		client: client,
		models: models,
	}, nil
}

// Chat sends the conversation and returns the assistant's reply.
// The system message is carried as a system instruction; user and assistant
// turns become alternating contents.
func (p *geminiChatProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	if p == nil || p.client == nil {
		return "", errors.New("gemini provider not configured")
	}

	var system string
	var contents []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			system = m.Content
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.3), // Low temperature keeps answers anchored to the context
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	var lastErr error
	for _, model := range p.models {
		start := time.Now()
		resp, err := p.client.Models.GenerateContent(ctx, model, contents, config)
		duration := time.Since(start)

		if err != nil {
			slog.WarnContext(ctx, "chat completion failed",
				"provider", "gemini",
				"model", model,
				"duration_ms", duration.Milliseconds(),
				"error", err)
			lastErr = fmt.Errorf("generate content failed: %w", err)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return "", lastErr
			}
			continue
		}

		if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			lastErr = fmt.Errorf("model %s returned no candidates", model)
			continue
		}

		var answer strings.Builder
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.Text != "" {
				answer.WriteString(part.Text)
			}
		}

		result := strings.TrimSpace(answer.String())
		if result == "" {
			lastErr = fmt.Errorf("model %s returned empty content", model)
			continue
		}

		if resp.UsageMetadata != nil {
			slog.DebugContext(ctx, "chat completion succeeded",
				"provider", "gemini",
				"model", model,
				"input_tokens", resp.UsageMetadata.PromptTokenCount,
				"output_tokens", resp.UsageMetadata.CandidatesTokenCount,
				"duration_ms", duration.Milliseconds())
		}
		return result, nil
	}

	return "", lastErr
}

// IsEnabled returns true if the provider is properly initialized.
func (p *geminiChatProvider) IsEnabled() bool {
	return p != nil && p.client != nil
}

// Provider returns the provider type.
func (p *geminiChatProvider) Provider() Provider {
	return ProviderGemini
}

// Close releases resources.
// Safe to call on nil receiver.
func (p *geminiChatProvider) Close() error {
	if p == nil {
		return nil
	}
	// genai client doesn't require cleanup
	return nil
}
