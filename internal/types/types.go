package types

// Classification of a requested symbol. Derived once per request.
type Classification string

const (
	Equity Classification = "EQUITY"
	Crypto Classification = "CRYPTO"
)

// QuoteSnapshot holds price data for a symbol. Every field is optional:
// a nil pointer means the source that supplies it failed or was skipped,
// which is an expected state, not an error.
type QuoteSnapshot struct {
	Price        *float64 `json:"price,omitempty"`
	Change       *float64 `json:"change,omitempty"`
	ChangePct    *float64 `json:"change_pct,omitempty"`
	DayHigh      *float64 `json:"day_high,omitempty"`
	DayLow       *float64 `json:"day_low,omitempty"`
	Volume       *int64   `json:"volume,omitempty"`
	AvgVolume    *int64   `json:"avg_volume,omitempty"`
	MarketCap    *float64 `json:"market_cap,omitempty"`
	High52W      *float64 `json:"high_52w,omitempty"`
	Low52W       *float64 `json:"low_52w,omitempty"`
	PERatio      *float64 `json:"pe_ratio,omitempty"`
	NextEarnings *string  `json:"next_earnings,omitempty"`
}

// CompanyProfile describes the business behind an equity ticker.
type CompanyProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
}

// RecommendationCounts are analyst recommendation buckets, zero-filled
// when the provider has no data.
type RecommendationCounts struct {
	StrongBuy  int `json:"strong_buy"`
	Buy        int `json:"buy"`
	Hold       int `json:"hold"`
	Sell       int `json:"sell"`
	StrongSell int `json:"strong_sell"`
}

// NewsItem is one article after normalization, most recent first.
type NewsItem struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Source      string  `json:"source"`
	AgeHours    float64 `json:"age_hours"`
	URL         string  `json:"url"`
}

type InsiderType string

const (
	InsiderBuy   InsiderType = "BUY"
	InsiderSell  InsiderType = "SELL"
	InsiderOther InsiderType = "OTHER"
)

// InsiderTransaction is a filing entry with role and type inferred from
// the filing title.
type InsiderTransaction struct {
	Role    string      `json:"role"`
	Type    InsiderType `json:"type"`
	AgeDays int         `json:"age_days"`
	Title   string      `json:"title"`
}

// RawFiling is an unclassified filing feed entry.
type RawFiling struct {
	Title    string
	FiledAgo int // days since filing
}

// SocialSentimentSnapshot aggregates labeled social messages. Its absence
// from a bundle is distinguishable from a computed 50/50 split.
type SocialSentimentSnapshot struct {
	Source     string `json:"source"`
	BullishPct int    `json:"bullish_pct"`
	BearishPct int    `json:"bearish_pct"`
	SampleSize int    `json:"sample_size"`
	Label      string `json:"label"`
}

// SignalBundle is the per-request aggregate of whatever data the sources
// produced. Built exactly once per request, read-only afterwards, never
// persisted.
type SignalBundle struct {
	Ticker          string                   `json:"ticker"`
	CanonicalID     string                   `json:"canonical_id,omitempty"`
	Classification  Classification           `json:"classification"`
	Quote           *QuoteSnapshot           `json:"quote,omitempty"`
	Profile         *CompanyProfile          `json:"profile,omitempty"`
	Recommendations *RecommendationCounts    `json:"recommendations,omitempty"`
	News            []NewsItem               `json:"news,omitempty"`
	Insider         []InsiderTransaction     `json:"insider,omitempty"`
	InsiderFlow     int                      `json:"insider_flow"`
	Social          *SocialSentimentSnapshot `json:"social,omitempty"`
}

// SentimentScore is the keyword-derived news sentiment.
type SentimentScore struct {
	Score int    `json:"score"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// NarrativeSection is one titled block of model-authored text.
type NarrativeSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// AnalysisResult is the full response handed to the presentation layer.
type AnalysisResult struct {
	Bundle        *SignalBundle      `json:"bundle"`
	InterestScore int                `json:"interest_score"`
	Sentiment     SentimentScore     `json:"sentiment"`
	Sections      []NarrativeSection `json:"sections"`
}

// Float returns a pointer to v, for optional snapshot fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int64) *int64 { return &v }

// Str returns a pointer to v.
func Str(v string) *string { return &v }
