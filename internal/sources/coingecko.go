package sources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"ticker-pulse/internal/trace"
	"ticker-pulse/internal/types"
)

// CoinGecko serves the crypto quote. No API key required.
type CoinGecko struct {
	client *resty.Client
}

func NewCoinGecko() *CoinGecko {
	return &CoinGecko{
		client: newClient("https://api.coingecko.com/api/v3"),
	}
}

type coinMarket struct {
	CurrentPrice             *float64 `json:"current_price"`
	High24h                  *float64 `json:"high_24h"`
	Low24h                   *float64 `json:"low_24h"`
	PriceChange24h           *float64 `json:"price_change_24h"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
	MarketCap                *float64 `json:"market_cap"`
	TotalVolume              *float64 `json:"total_volume"`
}

func (c *CoinGecko) FetchCryptoQuote(ctx context.Context, canonicalID string) (*types.QuoteSnapshot, error) {
	ctx, span := trace.StartSpan(ctx, "coingecko-quote")
	defer span.End()

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"vs_currency": "usd",
			"ids":         canonicalID,
		}).
		Get("/coins/markets")
	if err != nil {
		return nil, fmt.Errorf("coingecko quote for %s: %w", canonicalID, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("coingecko quote http %d", resp.StatusCode())
	}

	var markets []coinMarket
	if err := json.Unmarshal(resp.Body(), &markets); err != nil {
		return nil, fmt.Errorf("coingecko quote payload: %w", err)
	}
	if len(markets) == 0 {
		return nil, fmt.Errorf("coingecko quote for %s: unknown asset", canonicalID)
	}

	m := markets[0]
	snap := &types.QuoteSnapshot{
		Price:     m.CurrentPrice,
		Change:    m.PriceChange24h,
		ChangePct: m.PriceChangePercentage24h,
		DayHigh:   m.High24h,
		DayLow:    m.Low24h,
		MarketCap: m.MarketCap,
	}
	if m.TotalVolume != nil {
		snap.Volume = types.Int(int64(*m.TotalVolume))
	}
	return snap, nil
}
