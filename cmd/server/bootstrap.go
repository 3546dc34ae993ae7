package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"ticker-pulse/internal/aggregate"
	"ticker-pulse/internal/interfaces"
	"ticker-pulse/internal/llm/claude"
	"ticker-pulse/internal/llm/llmobs"
	"ticker-pulse/internal/llm/noop"
	"ticker-pulse/internal/llm/openai"
	"ticker-pulse/internal/logger"
	"ticker-pulse/internal/sources"
	"ticker-pulse/internal/store"
	"ticker-pulse/internal/trace"
)

// initializeSystem initializes env, logger, and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration, falling back to
// defaults when no config file is present
func loadConfig(ctx context.Context) *store.Config {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info(ctx, "No config.yaml found, using defaults")
			return store.DefaultConfig()
		}
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		os.Exit(1)
	}
	return cfg
}

// initializeSources wires every provider adapter into the aggregator's
// source set. Keyed adapters report themselves unconfigured at call
// time, so unconditional wiring is safe.
func initializeSources(ctx context.Context) aggregate.Sources {
	if os.Getenv("ALPHA_VANTAGE_API_KEY") == "" {
		logger.Warn(ctx, "ALPHA_VANTAGE_API_KEY not set - keyed equity quotes disabled")
	}
	if os.Getenv("NEWS_API_KEY") == "" {
		logger.Warn(ctx, "NEWS_API_KEY not set - news falls back to scraping")
	}
	if os.Getenv("FINNHUB_API_KEY") == "" {
		logger.Warn(ctx, "FINNHUB_API_KEY not set - analyst recommendations disabled")
	}

	av := sources.NewAlphaVantage()
	return aggregate.Sources{
		Quote:    av,
		Overview: av,
		Realtime: sources.NewYahoo(),
		Recs:     sources.NewFinnhub(),
		Crypto:   sources.NewCoinGecko(),
		News:     sources.NewNewsAPI(),
		Filings:  sources.NewEdgar(),
		Social:   sources.NewStocktwits(),
	}
}

// initializeCompleter initializes and returns the LLM completer with observability
func initializeCompleter(ctx context.Context, cfg *store.Config) interfaces.Completer {
	var completer interfaces.Completer

	switch cfg.LLM.Provider {
	case "OPENAI":
		completer = openai.NewOpenAICompleter(cfg)
	case "CLAUDE":
		completer = claude.NewClaudeCompleter(cfg)
	default:
		completer = noop.NewNoopCompleter()
		logger.Warn(ctx, "No LLM provider configured - narratives will be empty")
	}

	// Wrap with observability middleware
	return llmobs.Wrap(completer)
}
