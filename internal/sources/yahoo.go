package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/equity"

	"ticker-pulse/internal/trace"
	"ticker-pulse/internal/types"
)

// Yahoo serves the keyless realtime quote: price, market cap, P/E, the
// 52-week range, average volume, and the next earnings date.
type Yahoo struct{}

func NewYahoo() *Yahoo {
	return &Yahoo{}
}

func (y *Yahoo) FetchRealtime(ctx context.Context, symbol string) (*types.QuoteSnapshot, error) {
	_, span := trace.StartSpan(ctx, "yahoo-realtime")
	defer span.End()

	q, err := equity.Get(symbol)
	if err != nil {
		return nil, fmt.Errorf("yahoo realtime for %s: %w", symbol, err)
	}
	if q == nil {
		return nil, fmt.Errorf("yahoo realtime for %s: empty payload", symbol)
	}

	snap := &types.QuoteSnapshot{}
	if q.RegularMarketPrice > 0 {
		snap.Price = types.Float(q.RegularMarketPrice)
		snap.Change = types.Float(q.RegularMarketChange)
		snap.ChangePct = types.Float(q.RegularMarketChangePercent)
	}
	if q.RegularMarketDayHigh > 0 {
		snap.DayHigh = types.Float(q.RegularMarketDayHigh)
	}
	if q.RegularMarketDayLow > 0 {
		snap.DayLow = types.Float(q.RegularMarketDayLow)
	}
	if q.RegularMarketVolume > 0 {
		snap.Volume = types.Int(int64(q.RegularMarketVolume))
	}
	if q.AverageDailyVolume3Month > 0 {
		snap.AvgVolume = types.Int(int64(q.AverageDailyVolume3Month))
	}
	if q.MarketCap > 0 {
		snap.MarketCap = types.Float(float64(q.MarketCap))
	}
	if q.TrailingPE > 0 {
		snap.PERatio = types.Float(q.TrailingPE)
	}
	if q.FiftyTwoWeekHigh > 0 {
		snap.High52W = types.Float(q.FiftyTwoWeekHigh)
	}
	if q.FiftyTwoWeekLow > 0 {
		snap.Low52W = types.Float(q.FiftyTwoWeekLow)
	}
	if q.EarningsTimestamp > 0 {
		date := time.Unix(int64(q.EarningsTimestamp), 0).UTC().Format("Jan 2, 2006")
		snap.NextEarnings = types.Str(date)
	}
	return snap, nil
}
