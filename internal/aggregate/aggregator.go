// Package aggregate fans one analysis request out to every data source
// relevant to its classification and joins the results into a bundle.
// Each source fails independently; a degraded slice is logged and left
// absent, never propagated as a request failure.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ticker-pulse/internal/classify"
	"ticker-pulse/internal/interfaces"
	"ticker-pulse/internal/logger"
	"ticker-pulse/internal/sources"
	"ticker-pulse/internal/store"
	"ticker-pulse/internal/trace"
	"ticker-pulse/internal/types"
)

// Sources collects the adapters the aggregator fans out to. Any field
// may be nil; a nil adapter behaves like a degraded one.
type Sources struct {
	Quote    interfaces.EquityQuoteSource
	Overview interfaces.OverviewSource
	Realtime interfaces.RealtimeSource
	Recs     interfaces.RecommendationSource
	Crypto   interfaces.CryptoQuoteSource
	News     interfaces.NewsSearcher
	Filings  interfaces.FilingSource
	Social   interfaces.SocialSource
}

type Aggregator struct {
	cfg *store.Config
	src Sources
}

func New(cfg *store.Config, src Sources) *Aggregator {
	return &Aggregator{cfg: cfg, src: src}
}

// Aggregate builds the signal bundle for one request. It returns once
// every source has resolved or degraded; the bundle is read-only after.
func (a *Aggregator) Aggregate(ctx context.Context, ticker string, class types.Classification) *types.SignalBundle {
	ctx, span := trace.StartSpan(ctx, "aggregate")
	defer span.End()

	bundle := &types.SignalBundle{
		Ticker:         ticker,
		Classification: class,
	}

	if class == types.Crypto {
		bundle.CanonicalID = classify.CanonicalID(ticker)
		a.aggregateCrypto(ctx, bundle)
	} else {
		a.aggregateEquity(ctx, bundle)
	}
	return bundle
}

func (a *Aggregator) aggregateCrypto(ctx context.Context, bundle *types.SignalBundle) {
	canonicalName := classify.CanonicalName(bundle.CanonicalID)

	var (
		wg    sync.WaitGroup
		quote *types.QuoteSnapshot
		news  []types.NewsItem
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		if a.src.Crypto == nil {
			return
		}
		callCtx, cancel := a.sourceContext(ctx)
		defer cancel()
		q, err := a.src.Crypto.FetchCryptoQuote(callCtx, bundle.CanonicalID)
		if err != nil {
			a.degrade(ctx, bundle.Ticker, "crypto_quote", err)
			return
		}
		quote = q
	}()
	go func() {
		defer wg.Done()
		if a.src.News == nil {
			return
		}
		callCtx, cancel := a.sourceContext(ctx)
		defer cancel()
		items, err := a.src.News.Search(callCtx, interfaces.NewsQuery{
			Query:   fmt.Sprintf("%q OR %q", bundle.Ticker, canonicalName),
			Domains: a.cfg.News.CryptoDomains,
			Since:   time.Now().AddDate(0, 0, -a.cfg.News.CryptoWindowDays),
			Ticker:  bundle.Ticker,
		})
		if err != nil {
			a.degrade(ctx, bundle.Ticker, "news", err)
			return
		}
		news = items
	}()
	wg.Wait()

	bundle.Quote = quote
	bundle.News = capNews(news)
}

func (a *Aggregator) aggregateEquity(ctx context.Context, bundle *types.SignalBundle) {
	full := a.cfg.Profile == "full"

	var (
		wg       sync.WaitGroup
		keyQuote *types.QuoteSnapshot
		realtime *types.QuoteSnapshot
		profile  *types.CompanyProfile
		recs     *types.RecommendationCounts
		rawNews  []types.NewsItem
		filings  []types.RawFiling
		social   *types.SocialSentimentSnapshot
	)

	run := func(f func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}

	run(func() {
		if a.src.Quote == nil {
			return
		}
		callCtx, cancel := a.sourceContext(ctx)
		defer cancel()
		q, err := a.src.Quote.FetchQuote(callCtx, bundle.Ticker)
		if err != nil {
			a.degrade(ctx, bundle.Ticker, "equity_quote", err)
			return
		}
		keyQuote = q
	})
	run(func() {
		if a.src.Realtime == nil {
			return
		}
		callCtx, cancel := a.sourceContext(ctx)
		defer cancel()
		q, err := a.src.Realtime.FetchRealtime(callCtx, bundle.Ticker)
		if err != nil {
			a.degrade(ctx, bundle.Ticker, "realtime_quote", err)
			return
		}
		realtime = q
	})
	run(func() {
		if a.src.Overview == nil {
			return
		}
		callCtx, cancel := a.sourceContext(ctx)
		defer cancel()
		p, err := a.src.Overview.FetchOverview(callCtx, bundle.Ticker)
		if err != nil {
			a.degrade(ctx, bundle.Ticker, "overview", err)
			return
		}
		profile = p
	})
	run(func() {
		if a.src.Recs == nil {
			return
		}
		callCtx, cancel := a.sourceContext(ctx)
		defer cancel()
		r, err := a.src.Recs.FetchRecommendations(callCtx, bundle.Ticker)
		if err != nil {
			a.degrade(ctx, bundle.Ticker, "recommendations", err)
			return
		}
		recs = r
	})
	run(func() {
		if a.src.News == nil {
			return
		}
		callCtx, cancel := a.sourceContext(ctx)
		defer cancel()
		items, err := a.src.News.Search(callCtx, interfaces.NewsQuery{
			Query:   fmt.Sprintf("%q stock", bundle.Ticker),
			Domains: a.cfg.News.Domains,
			Since:   time.Now().AddDate(0, 0, -a.cfg.News.WindowDays),
			Ticker:  bundle.Ticker,
		})
		if err != nil {
			a.degrade(ctx, bundle.Ticker, "news", err)
			return
		}
		rawNews = items
	})
	if full {
		run(func() {
			if a.src.Filings == nil {
				return
			}
			callCtx, cancel := a.sourceContext(ctx)
			defer cancel()
			f, err := a.src.Filings.FetchFilings(callCtx, bundle.Ticker)
			if err != nil {
				a.degrade(ctx, bundle.Ticker, "insider_filings", err)
				return
			}
			filings = f
		})
		run(func() {
			if a.src.Social == nil {
				return
			}
			callCtx, cancel := a.sourceContext(ctx)
			defer cancel()
			s, err := a.src.Social.FetchSentiment(callCtx, bundle.Ticker)
			if err != nil {
				a.degrade(ctx, bundle.Ticker, "social_sentiment", err)
				return
			}
			social = s
		})
	}
	wg.Wait()

	bundle.Quote = mergeQuotes(keyQuote, realtime)
	bundle.Profile = profile
	if recs == nil {
		recs = &types.RecommendationCounts{}
	}
	bundle.Recommendations = recs
	bundle.Social = social

	companyName := ""
	if profile != nil {
		companyName = profile.Name
	}
	bundle.News = filterNews(rawNews, bundle.Ticker, companyName)
	bundle.Insider, bundle.InsiderFlow = classifyFilings(filings)
}

// mergeQuotes prefers the keyed provider's fields and fills the gaps
// from the realtime provider, so one degraded provider at most thins
// the snapshot.
func mergeQuotes(primary, secondary *types.QuoteSnapshot) *types.QuoteSnapshot {
	if primary == nil {
		return secondary
	}
	if secondary == nil {
		return primary
	}
	merged := *primary
	if merged.Price == nil {
		merged.Price = secondary.Price
	}
	if merged.Change == nil {
		merged.Change = secondary.Change
	}
	if merged.ChangePct == nil {
		merged.ChangePct = secondary.ChangePct
	}
	if merged.DayHigh == nil {
		merged.DayHigh = secondary.DayHigh
	}
	if merged.DayLow == nil {
		merged.DayLow = secondary.DayLow
	}
	if merged.Volume == nil {
		merged.Volume = secondary.Volume
	}
	if merged.AvgVolume == nil {
		merged.AvgVolume = secondary.AvgVolume
	}
	if merged.MarketCap == nil {
		merged.MarketCap = secondary.MarketCap
	}
	if merged.High52W == nil {
		merged.High52W = secondary.High52W
	}
	if merged.Low52W == nil {
		merged.Low52W = secondary.Low52W
	}
	if merged.PERatio == nil {
		merged.PERatio = secondary.PERatio
	}
	if merged.NextEarnings == nil {
		merged.NextEarnings = secondary.NextEarnings
	}
	return &merged
}

func (a *Aggregator) sourceContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(a.cfg.Providers.TimeoutSeconds)*time.Second)
}

func (a *Aggregator) degrade(ctx context.Context, ticker, slice string, err error) {
	if errors.Is(err, sources.ErrNotConfigured) {
		logger.Debug(ctx, "Source skipped, not configured", "ticker", ticker, "slice", slice)
		return
	}
	logger.Degraded(ctx, ticker, slice, err)
}
