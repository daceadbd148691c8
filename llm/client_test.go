package llm

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

// fakeProvider returns a canned reply or error and records the messages it saw.
type fakeProvider struct {
	reply    string
	err      error
	messages []ChatMessage
}

func (f *fakeProvider) Name() string  { return "fake" }
func (f *fakeProvider) Model() string { return "fake-model" }

func (f *fakeProvider) Chat(_ context.Context, messages []ChatMessage) (LLMResponse, error) {
	f.messages = messages
	if f.err != nil {
		return LLMResponse{}, f.err
	}
	return LLMResponse{Content: f.reply}, nil
}

func TestCompleteReturnsRawText(t *testing.T) {
	fake := &fakeProvider{reply: `{"thought": "x", "actions": []}`}
	client := NewClient(fake, zap.NewNop())

	got, err := client.Complete(context.Background(), "system text", "user text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != fake.reply {
		t.Errorf("expected raw reply passthrough, got %q", got)
	}
}

func TestCompleteSendsSystemAndUser(t *testing.T) {
	fake := &fakeProvider{reply: "ok"}
	client := NewClient(fake, nil)

	if _, err := client.Complete(context.Background(), "instruction", "prompt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(fake.messages))
	}
	if fake.messages[0].Role != "system" || fake.messages[0].Content != "instruction" {
		t.Errorf("unexpected system message: %+v", fake.messages[0])
	}
	if fake.messages[1].Role != "user" || fake.messages[1].Content != "prompt" {
		t.Errorf("unexpected user message: %+v", fake.messages[1])
	}
}

func TestCompleteWrapsProviderError(t *testing.T) {
	cause := errors.New("connection refused")
	fake := &fakeProvider{err: cause}
	client := NewClient(fake, zap.NewNop())

	_, err := client.Complete(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error")
	}

	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected *ProviderError, got %T", err)
	}
	if providerErr.Provider != "fake" {
		t.Errorf("expected provider 'fake', got %q", providerErr.Provider)
	}
	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
}
