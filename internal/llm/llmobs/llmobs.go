package llmobs

import (
	"context"

	"ticker-pulse/internal/interfaces"
	"ticker-pulse/internal/logger"
	"ticker-pulse/internal/trace"
)

// Sentinel text surfaced instead of a failed completion so a provider
// outage degrades one narrative section, never the whole analysis.
const UnavailableText = "Narrative commentary is temporarily unavailable."

// observableCompleter wraps a Completer with observability (logging & tracing)
type observableCompleter struct {
	completer interfaces.Completer
}

// Compile-time interface check
var _ interfaces.Completer = (*observableCompleter)(nil)

// Wrap wraps a completer with observability middleware
func Wrap(completer interfaces.Completer) interfaces.Completer {
	return &observableCompleter{
		completer: completer,
	}
}

// Complete requests a completion with observability. Failures are logged
// and replaced with the sentinel text rather than returned to the caller.
func (oc *observableCompleter) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Complete")
	defer span.End()

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Requesting narrative completion",
		"prompt_len", len(prompt),
		"max_tokens", maxTokens,
	)

	text, err := oc.completer.Complete(ctx, prompt, maxTokens, temperature)
	if err != nil {
		// Use ErrorWithErrSkip(1) to report the actual caller
		logger.ErrorWithErrSkip(ctx, 1, "Narrative completion failed", err,
			"max_tokens", maxTokens,
		)
		return UnavailableText, nil
	}

	logger.InfoSkip(ctx, 1, "Narrative completion received",
		"response_len", len(text),
	)

	return text, nil
}
