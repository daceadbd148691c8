package agent

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/codeBunny2022/gwsmaa/llm"
	"github.com/codeBunny2022/gwsmaa/prompt"
)

// scriptedProvider returns a fixed reply or error.
type scriptedProvider struct {
	reply string
	err   error
}

func (s *scriptedProvider) Name() string  { return "scripted" }
func (s *scriptedProvider) Model() string { return "scripted-model" }

func (s *scriptedProvider) Chat(context.Context, []llm.ChatMessage) (llm.LLMResponse, error) {
	if s.err != nil {
		return llm.LLMResponse{}, s.err
	}
	return llm.LLMResponse{Content: s.reply}, nil
}

func newTestDecider(reply string, err error) *Decider {
	client := llm.NewClient(&scriptedProvider{reply: reply, err: err}, zap.NewNop())
	return NewDecider(client, zap.NewNop()).
		WithClock(func() time.Time { return time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC) })
}

func testContext() prompt.Context {
	return prompt.Context{
		Task:              "Send a reminder email",
		AlreadyDone:       "",
		WorkspaceContent:  "",
		PromptHistory:     "",
		CurrentServiceURL: "",
		ServiceHistory:    "",
	}
}

func TestDecideEndToEnd(t *testing.T) {
	reply := `{"thought":"Sending email","actions":["send_email('x@y.com','Reminder','Dont forget')"]}`
	outcome, err := newTestDecider(reply, nil).Decide(context.Background(), testContext())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(outcome.Invocations) != 1 {
		t.Fatalf("expected 1 invocation, got %d", len(outcome.Invocations))
	}
	inv := outcome.Invocations[0]
	if inv.FunctionNumber != 2 {
		t.Errorf("expected function_number 2, got %d", inv.FunctionNumber)
	}
	wantArgs := []string{"x@y.com", "Reminder", "Dont forget"}
	if !reflect.DeepEqual(inv.Arguments, wantArgs) {
		t.Errorf("expected arguments %v, got %v", wantArgs, inv.Arguments)
	}

	if outcome.Thought == nil || *outcome.Thought != "Sending email" {
		t.Errorf("unexpected thought: %v", outcome.Thought)
	}
	if len(outcome.History) != 1 {
		t.Fatalf("expected single history entry, got %d", len(outcome.History))
	}
	if outcome.History[0].Thought == nil || *outcome.History[0].Thought != "Sending email" {
		t.Errorf("history thought mismatch: %v", outcome.History[0].Thought)
	}
}

func TestDecideDropsUnknownActions(t *testing.T) {
	reply := `{"thought":"mixed","actions":["open_gmail()", "bogus_action()", "send_email('x@y.com','S','B')"]}`
	outcome, err := newTestDecider(reply, nil).Decide(context.Background(), testContext())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(outcome.Invocations) != 2 {
		t.Fatalf("expected 2 invocations (bogus dropped), got %d", len(outcome.Invocations))
	}
	if outcome.Invocations[0].FunctionNumber != 1 {
		t.Errorf("expected first invocation id 1, got %d", outcome.Invocations[0].FunctionNumber)
	}
	if outcome.Invocations[1].FunctionNumber != 2 {
		t.Errorf("expected second invocation id 2, got %d", outcome.Invocations[1].FunctionNumber)
	}

	// History keeps all three, cleaned, in original order.
	if len(outcome.History) != 1 || len(outcome.History[0].Actions) != 3 {
		t.Fatalf("expected 3 history actions, got %+v", outcome.History)
	}
	if outcome.History[0].Actions[1] != "bogus_action()" {
		t.Errorf("history must keep unrecognized actions: %v", outcome.History[0].Actions)
	}
	if outcome.History[0].Actions[2] != "send_email(x@y.com,S,B)" {
		t.Errorf("history actions must be cleaned of quotes: %v", outcome.History[0].Actions)
	}
}

func TestDecideMalformedReply(t *testing.T) {
	outcome, err := newTestDecider("I refuse to answer in JSON today.", nil).Decide(context.Background(), testContext())
	if err != nil {
		t.Fatalf("malformed output must not error: %v", err)
	}
	if len(outcome.Invocations) != 0 {
		t.Errorf("expected no invocations, got %v", outcome.Invocations)
	}
	if outcome.Thought != nil {
		t.Errorf("expected nil thought, got %v", *outcome.Thought)
	}
	if len(outcome.History) != 1 || len(outcome.History[0].Actions) != 0 {
		t.Errorf("expected single empty history entry, got %+v", outcome.History)
	}
}

func TestDecideFencedReply(t *testing.T) {
	reply := "```json\n{\"thought\":\"go\",\"actions\":[\"open_drive()\"]}\n```"
	outcome, err := newTestDecider(reply, nil).Decide(context.Background(), testContext())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcome.Invocations) != 1 || outcome.Invocations[0].FunctionNumber != 4 {
		t.Errorf("expected open_drive invocation, got %+v", outcome.Invocations)
	}
}

func TestDecideProviderErrorPropagates(t *testing.T) {
	cause := errors.New("boom")
	_, err := newTestDecider("", cause).Decide(context.Background(), testContext())
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}
	var providerErr *llm.ProviderError
	if !errors.As(err, &providerErr) {
		t.Errorf("expected *llm.ProviderError, got %T", err)
	}
}
