package config

import (
	"os"
	"testing"
)

func TestNewDefaultProvider(t *testing.T) {
	settings, err := New("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.LLM.Provider != "anthropic" {
		t.Errorf("expected default provider 'anthropic', got %q", settings.LLM.Provider)
	}
}

func TestNewWithAlias(t *testing.T) {
	settings, err := New("claude")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.LLM.Provider != "anthropic" {
		t.Errorf("expected provider 'anthropic' (normalized from 'claude'), got %q", settings.LLM.Provider)
	}
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New("unknown_provider")
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewSamplingDefaults(t *testing.T) {
	for _, key := range []string{"LLM_MAX_TOKENS", "LLM_TEMPERATURE", "LLM_TOP_P", "ANTHROPIC_MODEL"} {
		t.Setenv(key, "")
	}
	settings, err := New("anthropic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.LLM.Model != "claude-3-5-sonnet-20240620" {
		t.Errorf("unexpected default model %q", settings.LLM.Model)
	}
	if settings.LLM.MaxTokens != 4096 {
		t.Errorf("expected max tokens 4096, got %d", settings.LLM.MaxTokens)
	}
	if settings.LLM.Temperature != 0.4 {
		t.Errorf("expected temperature 0.4, got %v", settings.LLM.Temperature)
	}
	if settings.LLM.TopP != 1.0 {
		t.Errorf("expected top_p 1.0, got %v", settings.LLM.TopP)
	}
}

func TestNewServerDefaults(t *testing.T) {
	t.Setenv("SERVER_ADDR", "")
	settings, err := New("anthropic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.Server.Addr != ":8000" {
		t.Errorf("expected default addr ':8000', got %q", settings.Server.Addr)
	}
	if settings.Server.SessionDBPath == "" {
		t.Error("expected non-empty session db path")
	}
}

func TestAPIKeyForValidProvider(t *testing.T) {
	original := os.Getenv("OPENAI_API_KEY")
	os.Setenv("OPENAI_API_KEY", "test-key")
	defer os.Setenv("OPENAI_API_KEY", original)

	key, err := APIKeyFor("openai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "test-key" {
		t.Errorf("expected 'test-key', got %q", key)
	}
}

func TestAPIKeyForLegacyClaudeSpelling(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("CLAUDE_API_KEY", "legacy-key")

	key, err := APIKeyFor("anthropic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "legacy-key" {
		t.Errorf("expected 'legacy-key', got %q", key)
	}
}

func TestAPIKeyForMissing(t *testing.T) {
	original := os.Getenv("OPENAI_API_KEY")
	os.Unsetenv("OPENAI_API_KEY")
	defer os.Setenv("OPENAI_API_KEY", original)

	_, err := APIKeyFor("openai")
	if err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestAPIKeyForUnknownProvider(t *testing.T) {
	_, err := APIKeyFor("unknown")
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestModelFor(t *testing.T) {
	model, err := ModelFor("openai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model == "" {
		t.Error("expected non-empty model")
	}
}

func TestNewWithInvalidEnvVar(t *testing.T) {
	original := os.Getenv("LLM_MAX_TOKENS")
	os.Setenv("LLM_MAX_TOKENS", "not-a-number")
	defer os.Setenv("LLM_MAX_TOKENS", original)

	_, err := New("openai")
	if err == nil {
		t.Error("expected error for invalid LLM_MAX_TOKENS")
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for unknown provider")
		}
	}()
	MustNew("unknown_provider")
}

func TestSupportedProviders(t *testing.T) {
	providers := SupportedProviders()
	if len(providers) == 0 {
		t.Error("expected at least one supported provider")
	}
}
