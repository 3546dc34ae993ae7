package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"

	"ticker-pulse/internal/trace"
	"ticker-pulse/internal/types"
)

// Finnhub serves analyst recommendation counts. Keyed; without a key the
// counts stay zero-filled downstream.
type Finnhub struct {
	client *resty.Client
	apiKey string
}

func NewFinnhub() *Finnhub {
	return &Finnhub{
		client: newClient("https://finnhub.io/api/v1"),
		apiKey: os.Getenv("FINNHUB_API_KEY"),
	}
}

type finnhubRecommendation struct {
	StrongBuy  int    `json:"strongBuy"`
	Buy        int    `json:"buy"`
	Hold       int    `json:"hold"`
	Sell       int    `json:"sell"`
	StrongSell int    `json:"strongSell"`
	Period     string `json:"period"`
}

func (f *Finnhub) FetchRecommendations(ctx context.Context, symbol string) (*types.RecommendationCounts, error) {
	if f.apiKey == "" {
		return nil, ErrNotConfigured
	}

	ctx, span := trace.StartSpan(ctx, "finnhub-recommendations")
	defer span.End()

	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"token":  f.apiKey,
		}).
		Get("/stock/recommendation")
	if err != nil {
		return nil, fmt.Errorf("finnhub recommendations for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("finnhub recommendations http %d", resp.StatusCode())
	}

	var recs []finnhubRecommendation
	if err := json.Unmarshal(resp.Body(), &recs); err != nil {
		return nil, fmt.Errorf("finnhub recommendations payload: %w", err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("finnhub recommendations for %s: empty payload", symbol)
	}

	// First entry is the most recent period.
	latest := recs[0]
	return &types.RecommendationCounts{
		StrongBuy:  latest.StrongBuy,
		Buy:        latest.Buy,
		Hold:       latest.Hold,
		Sell:       latest.Sell,
		StrongSell: latest.StrongSell,
	}, nil
}
