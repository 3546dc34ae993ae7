// Package narrative turns a scored signal bundle into model-authored
// commentary sections. Composition happens after scoring since the
// scores feed the prompt text.
package narrative

import (
	"context"
	"sync"

	"ticker-pulse/internal/interfaces"
	"ticker-pulse/internal/logger"
	"ticker-pulse/internal/store"
	"ticker-pulse/internal/trace"
	"ticker-pulse/internal/types"
)

type Composer struct {
	cfg       *store.Config
	completer interfaces.Completer
}

func NewComposer(cfg *store.Config, completer interfaces.Completer) *Composer {
	return &Composer{cfg: cfg, completer: completer}
}

// Compose requests the narrative for a bundle. Equities on the full
// profile get the dual simplified+detailed treatment with both
// completions in flight at once; everything else gets single mode.
func (c *Composer) Compose(ctx context.Context, bundle *types.SignalBundle, interest int, sentiment types.SentimentScore) []types.NarrativeSection {
	ctx, span := trace.StartSpan(ctx, "narrative-compose")
	defer span.End()

	if bundle.Classification == types.Equity && c.cfg.Profile == "full" {
		return c.composeDual(ctx, bundle, interest, sentiment)
	}

	text := c.complete(ctx, singleModePrompt(bundle, interest, sentiment))
	return parseSections(text, singleModeTitles)
}

func (c *Composer) composeDual(ctx context.Context, bundle *types.SignalBundle, interest int, sentiment types.SentimentScore) []types.NarrativeSection {
	var wg sync.WaitGroup
	var simpleText, detailedText string

	// A panic inside either completion must not take the process down,
	// it just leaves that half of the narrative empty.
	runHalf := func(dst *string, prompt string) {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Error(ctx, "Narrative completion panicked", "panic", r)
			}
		}()
		*dst = c.complete(ctx, prompt)
	}

	wg.Add(2)
	go runHalf(&simpleText, simplifiedPrompt(bundle, interest, sentiment))
	go runHalf(&detailedText, detailedPrompt(bundle, interest, sentiment))
	wg.Wait()

	sections := parseSections(simpleText, simplifiedTitles)
	sections = append(sections, parseSections(detailedText, detailedTitles)...)
	return sections
}

// complete runs one model call. The wrapped completer substitutes
// sentinel text on failure, so errors reduce to empty output here.
func (c *Composer) complete(ctx context.Context, prompt string) string {
	text, err := c.completer.Complete(ctx, prompt, c.cfg.LLM.MaxTokens, c.cfg.LLM.Temperature)
	if err != nil {
		return ""
	}
	return text
}
