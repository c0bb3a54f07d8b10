// Package genai provides integration with LLM chat APIs.
// This file contains factory functions for creating chat providers.
package genai

import (
	"context"
	"log/slog"

	"github.com/hsrw-ise/advisor-go/internal/metrics"
)

// NewChatChain creates a FallbackChat from the configuration.
// Providers are created in cfg.Providers order; a provider that is not
// configured (missing base URL or API key) is skipped silently, a provider
// that fails to initialize is skipped with a warning. Returns nil when no
// provider could be created, which callers treat as "chat disabled".
func NewChatChain(ctx context.Context, cfg ChatConfig, m *metrics.Metrics) (*FallbackChat, error) {
	order := cfg.Providers
	if len(order) == 0 {
		order = DefaultProviders
	}

	var providers []ChatProvider
	for _, name := range order {
		pcfg := cfg.GetProviderConfig(name)
		if pcfg == nil {
			continue
		}

		var (
			p   ChatProvider
			err error
		)
		switch name {
		case ProviderOllama, ProviderGroq:
			var op *openaiChatProvider
			op, err = newOpenAIChatProvider(name, pcfg)
			if op != nil {
				p = op
			}
		case ProviderGemini:
			var gp *geminiChatProvider
			gp, err = newGeminiChatProvider(ctx, pcfg)
			if gp != nil {
				p = gp
			}
		default:
			slog.WarnContext(ctx, "unknown chat provider in configuration", "provider", name)
			continue
		}

		if err != nil {
			slog.WarnContext(ctx, "failed to create chat provider", "provider", name, "error", err)
			continue
		}
		if p != nil && p.IsEnabled() {
			providers = append(providers, p)
		}
	}

	if len(providers) == 0 {
		slog.InfoContext(ctx, "no chat provider configured, answering without LLM")
		return nil, nil //nolint:nilnil // Intentional: feature disabled when unconfigured
	}

	slog.InfoContext(ctx, "chat provider chain configured",
		"primary", providers[0].Provider(),
		"chainSize", len(providers))

	return NewFallbackChat(providers, cfg.RetryConfig, m), nil
}
