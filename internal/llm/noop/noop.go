package noop

import (
	"context"

	"ticker-pulse/internal/logger"
)

// NoopCompleter is a fallback completer used when no LLM is configured
type NoopCompleter struct{}

// NewNoopCompleter returns a new instance that always returns empty text
func NewNoopCompleter() *NoopCompleter {
	return &NoopCompleter{}
}

// Complete implements the Completer interface. It always returns empty text
func (c *NoopCompleter) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	logger.Debug(ctx, "Noop completer called - always returns empty text", "prompt_len", len(prompt))
	return "", nil
}
