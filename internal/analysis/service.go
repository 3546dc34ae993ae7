// Package analysis runs the full pipeline for one request: classify the
// ticker, aggregate source data, score the bundle, compose the
// narrative. Every request is stateless end-to-end.
package analysis

import (
	"context"
	"errors"
	"strings"

	"ticker-pulse/internal/aggregate"
	"ticker-pulse/internal/classify"
	"ticker-pulse/internal/logger"
	"ticker-pulse/internal/narrative"
	"ticker-pulse/internal/score"
	"ticker-pulse/internal/store"
	"ticker-pulse/internal/trace"
	"ticker-pulse/internal/types"
)

// ErrMissingTicker is the only caller-visible input error.
var ErrMissingTicker = errors.New("ticker is required")

type Service struct {
	cfg        *store.Config
	aggregator *aggregate.Aggregator
	composer   *narrative.Composer
}

func NewService(cfg *store.Config, aggregator *aggregate.Aggregator, composer *narrative.Composer) *Service {
	return &Service{cfg: cfg, aggregator: aggregator, composer: composer}
}

// Analyze produces the analysis for one ticker. Source and model
// failures degrade the result; the only error returned is a missing
// ticker. An unexpected internal panic yields a static fallback payload
// so the caller still renders a well-formed response.
func (s *Service) Analyze(ctx context.Context, ticker string, isCryptoHint *bool) (result *types.AnalysisResult, err error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, ErrMissingTicker
	}

	ctx, span := trace.StartSpan(ctx, "analyze")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "Analysis pipeline panicked", "ticker", ticker, "panic", r)
			result = fallbackResult(ticker)
			err = nil
		}
	}()

	timer := logger.StartOperation(ctx, "analyze", "ticker", ticker)

	class := classify.Classify(ticker, isCryptoHint)
	bundle := s.aggregator.Aggregate(ctx, ticker, class)

	sentiment := score.Sentiment(bundle.News, ticker)
	interest := score.Interest(bundle, sentiment.Score)

	sections := s.composer.Compose(ctx, bundle, interest, sentiment)

	logger.Analysis(ctx, ticker, string(class), interest, sentiment.Score,
		"news_count", len(bundle.News),
		"sections", len(sections),
	)
	timer.End("classification", string(class))

	return &types.AnalysisResult{
		Bundle:        bundle,
		InterestScore: interest,
		Sentiment:     sentiment,
		Sections:      sections,
	}, nil
}

// fallbackResult is served when the pipeline fails in a way degradation
// did not absorb. It keeps the response shape intact for the caller.
func fallbackResult(ticker string) *types.AnalysisResult {
	return &types.AnalysisResult{
		Bundle: &types.SignalBundle{
			Ticker:         ticker,
			Classification: classify.Classify(ticker, nil),
		},
		InterestScore: 50,
		Sentiment:     types.SentimentScore{Score: 50, Label: "Neutral", Color: "gray"},
		Sections: []types.NarrativeSection{
			{
				Title:   "MARKET CONTEXT",
				Content: "Analysis is temporarily unavailable for this ticker. Please try again shortly.",
			},
		},
	}
}
