// Decision pipeline: build prompt, call the model once, normalize the reply.
//
// Information Hiding:
// - Prompt assembly delegated to the prompt package
// - Reply parsing delegated to textparse
// - Only provider failures escape; malformed model output degrades to empty

package agent

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/codeBunny2022/gwsmaa/actions"
	"github.com/codeBunny2022/gwsmaa/internal/textparse"
	"github.com/codeBunny2022/gwsmaa/llm"
	"github.com/codeBunny2022/gwsmaa/prompt"
)

// Decider turns one prompt context into a validated action list.
// Stateless between calls; safe for concurrent use.
type Decider struct {
	prompts *prompt.Builder
	client  *llm.Client
	logger  *zap.Logger
	now     func() time.Time
}

// NewDecider creates a decider over the given LLM client.
func NewDecider(client *llm.Client, logger *zap.Logger) *Decider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Decider{
		prompts: prompt.NewBuilder(),
		client:  client,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock overrides the timestamp source for the system instruction.
func (d *Decider) WithClock(now func() time.Time) *Decider {
	d.now = now
	return d
}

// Decide runs the full pipeline for one request. The returned error is
// always a provider failure; any malformed model output yields an empty but
// valid Outcome. Two identical contexts may legitimately decide differently:
// sampling is not deterministic.
func (d *Decider) Decide(ctx context.Context, pctx prompt.Context) (Outcome, error) {
	userPrompt := d.prompts.Build(pctx)
	system := d.prompts.SystemInstruction(d.now())

	raw, err := d.client.Complete(ctx, system, userPrompt)
	if err != nil {
		return Outcome{}, err
	}

	decision := parseDecision(raw)
	d.logger.Info("model decision",
		zap.Stringp("thought", decision.Thought),
		zap.Strings("actions", decision.Actions))

	invocations := make([]Invocation, 0, len(decision.Actions))
	for _, call := range decision.Actions {
		name, args, ok := textparse.ParseCall(call)
		if !ok {
			d.logger.Warn("action is not call-shaped, skipping", zap.String("action", call))
			continue
		}
		number, known := actions.Lookup(name)
		if !known {
			d.logger.Warn("invalid function name, skipping", zap.String("name", name))
			continue
		}
		cleaned := make([]string, 0, len(args))
		for _, arg := range args {
			cleaned = append(cleaned, textparse.CleanArgument(arg))
		}
		invocations = append(invocations, Invocation{
			FunctionNumber: number,
			Arguments:      cleaned,
		})
	}

	// The history entry keeps every action the model proposed, cleaned but
	// unfiltered, so the caller's log matches what the model said it did.
	cleanedActions := make([]string, 0, len(decision.Actions))
	for _, call := range decision.Actions {
		cleanedActions = append(cleanedActions, textparse.CleanArgument(call))
	}

	return Outcome{
		Invocations: invocations,
		History: []HistoryEntry{{
			Thought: decision.Thought,
			Actions: cleanedActions,
		}},
		Thought: decision.Thought,
	}, nil
}

// parseDecision extracts the {thought, actions} structure from raw reply
// text. Missing or malformed pieces degrade to a nil thought and no actions.
func parseDecision(raw string) Decision {
	dict := textparse.ExtractDict(raw)

	var decision Decision
	if thought, ok := dict["thought"].(string); ok {
		decision.Thought = &thought
	}
	if rawActions, ok := dict["actions"].([]any); ok {
		for _, a := range rawActions {
			if s, ok := a.(string); ok {
				decision.Actions = append(decision.Actions, s)
			}
		}
	}
	return decision
}
