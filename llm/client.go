// LLMClient - Simple wrapper around providers.

package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Client wraps a Provider with the single-call interface the decision
// pipeline needs. One request in, raw text out, no retries: a failed call is
// fatal for that request.
type Client struct {
	provider Provider
	logger   *zap.Logger
}

// NewClient creates a new LLM client from a provider.
func NewClient(provider Provider, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{provider: provider, logger: logger}
}

// Complete sends one system instruction plus one user prompt and returns the
// raw reply text. The round-trip duration is logged. Failures are wrapped in
// *ProviderError.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	messages := []ChatMessage{
		SystemMessage(system),
		UserMessage(user),
	}

	c.logger.Info("requesting model response",
		zap.String("provider", c.provider.Name()),
		zap.String("model", c.provider.Model()))

	start := time.Now()
	response, err := c.provider.Chat(ctx, messages)
	elapsed := time.Since(start)

	if err != nil {
		c.logger.Error("model request failed",
			zap.String("provider", c.provider.Name()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return "", &ProviderError{Provider: c.provider.Name(), Err: err}
	}

	c.logger.Info("model response received",
		zap.String("provider", c.provider.Name()),
		zap.Duration("elapsed", elapsed))
	return response.Content, nil
}

// Provider returns the underlying provider.
func (c *Client) Provider() Provider {
	return c.provider
}
