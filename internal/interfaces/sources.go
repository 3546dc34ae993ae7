package interfaces

import (
	"context"
	"time"

	"ticker-pulse/internal/types"
)

// NewsQuery parameterizes one news search.
type NewsQuery struct {
	Query   string
	Domains []string
	Since   time.Time
	Ticker  string
}

// Source adapters. Each performs one network call and normalizes the
// result; callers treat any returned error as an absent data slice.

type EquityQuoteSource interface {
	FetchQuote(ctx context.Context, symbol string) (*types.QuoteSnapshot, error)
}

type OverviewSource interface {
	FetchOverview(ctx context.Context, symbol string) (*types.CompanyProfile, error)
}

type RealtimeSource interface {
	FetchRealtime(ctx context.Context, symbol string) (*types.QuoteSnapshot, error)
}

type RecommendationSource interface {
	FetchRecommendations(ctx context.Context, symbol string) (*types.RecommendationCounts, error)
}

type CryptoQuoteSource interface {
	FetchCryptoQuote(ctx context.Context, canonicalID string) (*types.QuoteSnapshot, error)
}

type NewsSearcher interface {
	Search(ctx context.Context, q NewsQuery) ([]types.NewsItem, error)
}

type FilingSource interface {
	FetchFilings(ctx context.Context, symbol string) ([]types.RawFiling, error)
}

type SocialSource interface {
	FetchSentiment(ctx context.Context, symbol string) (*types.SocialSentimentSnapshot, error)
}
