// Package genai provides integration with LLM chat APIs.
// This file contains the fallback wrapper for cross-provider failover.
package genai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/hsrw-ise/advisor-go/internal/errors"
	"github.com/hsrw-ise/advisor-go/internal/metrics"
)

// FallbackChat chains multiple ChatProviders.
// Each provider is tried with retry and backoff; when a provider fails
// permanently or exhausts its retries, the next provider in the chain takes
// over. Only when the whole chain fails does the caller see an error.
type FallbackChat struct {
	providers   []ChatProvider
	retryConfig RetryConfig
	metrics     *metrics.Metrics
}

// NewFallbackChat creates a fallback-enabled chat chain.
// Nil providers are skipped; metrics may be nil.
func NewFallbackChat(providers []ChatProvider, cfg RetryConfig, m *metrics.Metrics) *FallbackChat {
	var active []ChatProvider
	for _, p := range providers {
		if p != nil && p.IsEnabled() {
			active = append(active, p)
		}
	}
	if cfg.MaxAttempts <= 0 {
		cfg = DefaultRetryConfig()
	}
	return &FallbackChat{
		providers:   active,
		retryConfig: cfg,
		metrics:     m,
	}
}

// Chat tries each provider in order until one answers.
func (f *FallbackChat) Chat(ctx context.Context, messages []Message) (string, error) {
	if f == nil || len(f.providers) == 0 {
		return "", apperrors.ErrProviderUnavailable
	}

	var lastErr error
	for i, provider := range f.providers {
		start := time.Now()
		answer, err := f.chatWithRetry(ctx, provider, messages)
		duration := time.Since(start)

		if err == nil {
			f.recordProvider(provider.Provider(), "success", duration)
			if i > 0 {
				slog.InfoContext(ctx, "fallback provider answered",
					"provider", provider.Provider(),
					"chain_position", i+1)
			}
			return answer, nil
		}

		lastErr = apperrors.NewProviderError(provider.Provider().String(), "", err)
		status := "error"
		if IsRetryable(err) {
			status = "timeout"
		}
		f.recordProvider(provider.Provider(), status, duration)

		action := ClassifyError(err)
		slog.WarnContext(ctx, "chat provider failed",
			"provider", provider.Provider(),
			"error", err,
			"action", action.String(),
			"duration_ms", duration.Milliseconds())

		// Context errors end the chain; the caller is gone or out of time
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("%w: %w", apperrors.ErrAllProvidersFailed, lastErr)
}

// chatWithRetry attempts one provider with retry logic.
func (f *FallbackChat) chatWithRetry(ctx context.Context, provider ChatProvider, messages []Message) (string, error) {
	var lastErr error

	for attempt := 0; attempt < f.retryConfig.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		answer, err := provider.Chat(ctx, messages)
		if err == nil {
			return answer, nil
		}

		lastErr = err
		if ClassifyError(err) != ActionRetry {
			return "", err
		}

		// Last attempt, don't sleep
		if attempt == f.retryConfig.MaxAttempts-1 {
			break
		}

		backoff := CalculateBackoff(attempt+1, f.retryConfig.InitialDelay, f.retryConfig.MaxDelay)
		if !HasSufficientBudget(ctx, backoff) {
			return "", fmt.Errorf("timeout during retry: %w", lastErr)
		}

		slog.DebugContext(ctx, "retrying chat request",
			"provider", provider.Provider(),
			"attempt", attempt+1,
			"backoff", backoff,
			"error", err)

		if err := Sleep(ctx, backoff); err != nil {
			return "", err
		}
	}

	return "", lastErr
}

func (f *FallbackChat) recordProvider(p Provider, status string, duration time.Duration) {
	if f.metrics == nil {
		return
	}
	f.metrics.RecordProviderRequest(p.String(), status, duration.Seconds())
}

// IsEnabled returns true if at least one provider is usable.
func (f *FallbackChat) IsEnabled() bool {
	return f != nil && len(f.providers) > 0
}

// Close closes every provider in the chain.
func (f *FallbackChat) Close() error {
	if f == nil {
		return nil
	}
	var firstErr error
	for _, p := range f.providers {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
