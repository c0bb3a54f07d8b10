package genai

import (
	"reflect"
	"testing"
	"time"
)

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.MaxAttempts != 2 {
		t.Errorf("MaxAttempts = %d, want 2", cfg.MaxAttempts)
	}
	if cfg.InitialDelay != 500*time.Millisecond {
		t.Errorf("InitialDelay = %v, want 500ms", cfg.InitialDelay)
	}
	if cfg.MaxDelay != 3*time.Second {
		t.Errorf("MaxDelay = %v, want 3s", cfg.MaxDelay)
	}
}

func TestHasProvider(t *testing.T) {
	cfg := ChatConfig{
		Ollama: ProviderConfig{BaseURL: "http://localhost:11434/v1"},
		Groq:   ProviderConfig{APIKey: "gsk_test"},
	}

	tests := []struct {
		name     string
		provider Provider
		want     bool
	}{
		{"ollama with base URL", ProviderOllama, true},
		{"groq with key", ProviderGroq, true},
		{"gemini without key", ProviderGemini, false},
		{"unknown provider", Provider("mistral"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.HasProvider(tt.provider); got != tt.want {
				t.Errorf("HasProvider(%s) = %v, want %v", tt.provider, got, tt.want)
			}
		})
	}
}

func TestGetProviderConfig(t *testing.T) {
	cfg := ChatConfig{
		Gemini: ProviderConfig{APIKey: "AIza-test", Models: []string{"gemini-2.0-flash"}},
	}

	got := cfg.GetProviderConfig(ProviderGemini)
	if got == nil {
		t.Fatal("GetProviderConfig(gemini) returned nil")
	}
	if got.APIKey != "AIza-test" {
		t.Errorf("APIKey = %q, want AIza-test", got.APIKey)
	}

	if cfg.GetProviderConfig(Provider("mistral")) != nil {
		t.Error("unknown provider should return nil config")
	}
}

func TestConfiguredProviders(t *testing.T) {
	cfg := ChatConfig{
		Providers: []Provider{ProviderOllama, ProviderGroq, ProviderGemini},
		Ollama:    ProviderConfig{BaseURL: "http://localhost:11434/v1"},
		Gemini:    ProviderConfig{APIKey: "AIza-test"},
	}

	got := cfg.ConfiguredProviders()
	want := []Provider{ProviderOllama, ProviderGemini}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ConfiguredProviders() = %v, want %v", got, want)
	}
}
