package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"ticker-pulse/internal/trace"
	"ticker-pulse/internal/types"
)

// AlphaVantage serves the day quote and the company overview. Both calls
// need an API key; with no key the adapter reports itself unconfigured
// and the slices stay absent.
type AlphaVantage struct {
	client *resty.Client
	apiKey string
}

func NewAlphaVantage() *AlphaVantage {
	return &AlphaVantage{
		client: newClient("https://www.alphavantage.co"),
		apiKey: os.Getenv("ALPHA_VANTAGE_API_KEY"),
	}
}

// globalQuote mirrors Alpha Vantage's numbered-key payload. All values
// arrive as strings and any of them may be missing.
type globalQuote struct {
	Quote struct {
		Price     string `json:"05. price"`
		High      string `json:"03. high"`
		Low       string `json:"04. low"`
		Volume    string `json:"06. volume"`
		Change    string `json:"09. change"`
		ChangePct string `json:"10. change percent"`
	} `json:"Global Quote"`
}

func (a *AlphaVantage) FetchQuote(ctx context.Context, symbol string) (*types.QuoteSnapshot, error) {
	if a.apiKey == "" {
		return nil, ErrNotConfigured
	}

	ctx, span := trace.StartSpan(ctx, "alphavantage-quote")
	defer span.End()

	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "GLOBAL_QUOTE",
			"symbol":   symbol,
			"apikey":   a.apiKey,
		}).
		Get("/query")
	if err != nil {
		return nil, fmt.Errorf("alphavantage quote for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("alphavantage quote http %d", resp.StatusCode())
	}

	var gq globalQuote
	if err := json.Unmarshal(resp.Body(), &gq); err != nil {
		return nil, fmt.Errorf("alphavantage quote payload: %w", err)
	}
	if gq.Quote.Price == "" {
		return nil, fmt.Errorf("alphavantage quote for %s: empty payload", symbol)
	}

	snap := &types.QuoteSnapshot{}
	snap.Price = parseFloat(gq.Quote.Price)
	snap.Change = parseFloat(gq.Quote.Change)
	snap.ChangePct = parsePercent(gq.Quote.ChangePct)
	snap.DayHigh = parseFloat(gq.Quote.High)
	snap.DayLow = parseFloat(gq.Quote.Low)
	snap.Volume = parseInt(gq.Quote.Volume)
	return snap, nil
}

type companyOverview struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
	Sector      string `json:"Sector"`
	Industry    string `json:"Industry"`
}

func (a *AlphaVantage) FetchOverview(ctx context.Context, symbol string) (*types.CompanyProfile, error) {
	if a.apiKey == "" {
		return nil, ErrNotConfigured
	}

	ctx, span := trace.StartSpan(ctx, "alphavantage-overview")
	defer span.End()

	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "OVERVIEW",
			"symbol":   symbol,
			"apikey":   a.apiKey,
		}).
		Get("/query")
	if err != nil {
		return nil, fmt.Errorf("alphavantage overview for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("alphavantage overview http %d", resp.StatusCode())
	}

	var ov companyOverview
	if err := json.Unmarshal(resp.Body(), &ov); err != nil {
		return nil, fmt.Errorf("alphavantage overview payload: %w", err)
	}
	if ov.Name == "" {
		return nil, fmt.Errorf("alphavantage overview for %s: empty payload", symbol)
	}

	return &types.CompanyProfile{
		Name:        ov.Name,
		Description: ov.Description,
		Sector:      ov.Sector,
		Industry:    ov.Industry,
	}, nil
}

// parseFloat returns nil for unparseable provider strings rather than
// treating them as zero.
func parseFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

func parsePercent(s string) *float64 {
	return parseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}

func parseInt(s string) *int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
