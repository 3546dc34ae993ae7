package analysis

import (
	"context"
	"errors"
	"os"
	"testing"

	"ticker-pulse/internal/aggregate"
	"ticker-pulse/internal/logger"
	"ticker-pulse/internal/narrative"
	"ticker-pulse/internal/store"
	"ticker-pulse/internal/types"
)

func TestMain(m *testing.M) {
	logger.InitWithConfig(logger.LogConfig{Level: "ERROR", Format: "text"})
	os.Exit(m.Run())
}

type emptyCompleter struct{}

func (emptyCompleter) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	return "", nil
}

func newTestService(cfg *store.Config, src aggregate.Sources) *Service {
	return NewService(cfg,
		aggregate.New(cfg, src),
		narrative.NewComposer(cfg, emptyCompleter{}),
	)
}

func TestAnalyzeMissingTicker(t *testing.T) {
	svc := newTestService(store.DefaultConfig(), aggregate.Sources{})

	for _, ticker := range []string{"", "   "} {
		_, err := svc.Analyze(context.Background(), ticker, nil)
		if !errors.Is(err, ErrMissingTicker) {
			t.Errorf("Ticker %q: expected ErrMissingTicker, got %v", ticker, err)
		}
	}
}

func TestAnalyzeCryptoEndToEnd(t *testing.T) {
	cfg := store.DefaultConfig()
	svc := newTestService(cfg, aggregate.Sources{})

	result, err := svc.Analyze(context.Background(), "btc", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Bundle.Classification != types.Crypto {
		t.Errorf("Expected BTC classified as crypto, got %s", result.Bundle.Classification)
	}
	if result.Bundle.Ticker != "BTC" {
		t.Errorf("Expected upper-cased ticker, got %s", result.Bundle.Ticker)
	}
	if result.InterestScore < 0 || result.InterestScore > 100 {
		t.Errorf("Interest score out of bounds: %d", result.InterestScore)
	}
	if result.Sentiment.Score != 50 || result.Sentiment.Label != "Neutral" {
		t.Errorf("Expected neutral sentiment with no news, got %+v", result.Sentiment)
	}
}

func TestAnalyzeEquityHint(t *testing.T) {
	cfg := store.DefaultConfig()
	svc := newTestService(cfg, aggregate.Sources{})

	hint := true
	result, err := svc.Analyze(context.Background(), "AAPL", &hint)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Bundle.Classification != types.Crypto {
		t.Errorf("Expected hint to force crypto, got %s", result.Bundle.Classification)
	}
}

func TestAnalyzeSurvivesAllSourcesAbsent(t *testing.T) {
	cfg := store.DefaultConfig()
	svc := newTestService(cfg, aggregate.Sources{})

	result, err := svc.Analyze(context.Background(), "MSFT", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Bundle == nil {
		t.Fatal("Expected a bundle even with every source absent")
	}
	if result.Bundle.Quote != nil || result.Bundle.Profile != nil {
		t.Error("Expected absent quote and profile with no sources wired")
	}
	if len(result.Sections) != 0 {
		t.Errorf("Expected empty sections from empty completion, got %d", len(result.Sections))
	}
}

type panickingComposerCompleter struct{}

func (panickingComposerCompleter) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	panic("provider client bug")
}

func TestAnalyzePanicFallback(t *testing.T) {
	cfg := store.DefaultConfig()
	svc := NewService(cfg,
		aggregate.New(cfg, aggregate.Sources{}),
		narrative.NewComposer(cfg, panickingComposerCompleter{}),
	)

	result, err := svc.Analyze(context.Background(), "btc", nil)
	if err != nil {
		t.Fatalf("Expected fallback payload, got error %v", err)
	}
	if result == nil {
		t.Fatal("Expected fallback result, got nil")
	}
	if len(result.Sections) != 1 || result.Sections[0].Title != "MARKET CONTEXT" {
		t.Errorf("Expected static fallback section, got %+v", result.Sections)
	}
	if result.Sentiment.Score != 50 {
		t.Errorf("Expected neutral fallback sentiment, got %d", result.Sentiment.Score)
	}
}
