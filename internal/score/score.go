// Package score derives the interest and sentiment metrics from a signal
// bundle. Both scorers are pure functions of their inputs so identical
// bundles always produce identical scores.
package score

import (
	"math"
	"strings"

	"ticker-pulse/internal/types"
)

// Fixed keyword sets for lexical sentiment scoring.
var (
	strongPositive = []string{
		"surge", "soar", "jump", "rally", "beat", "exceed",
		"upgrade", "breakthrough", "record", "best",
	}
	strongNegative = []string{
		"plunge", "crash", "plummet", "tumble", "miss", "downgrade",
		"slump", "lawsuit", "fraud", "worst",
	}
	moderatePositive = []string{
		"gain", "rise", "climb", "advance", "improve", "boost",
		"optimis", "bullish",
	}
	moderateNegative = []string{
		"fall", "drop", "decline", "slip", "dip", "concern",
		"warn", "bearish",
	}
)

// Interest blends price-move magnitude with news volume, plus a small
// sentiment adjustment for equities. Starts at 50, clamps to [0,100] and
// rounds once at the end.
func Interest(bundle *types.SignalBundle, sentiment int) int {
	acc := 50.0

	if bundle.Quote != nil && bundle.Quote.ChangePct != nil {
		if bundle.Classification == types.Crypto {
			acc += cryptoLadder(*bundle.Quote.ChangePct)
		} else {
			acc += equityLadder(*bundle.Quote.ChangePct)
		}
	}

	acc += newsVolumeBonus(len(bundle.News))

	if bundle.Classification == types.Equity {
		acc += float64(sentiment-50) / 5
	}

	return clampRound(acc)
}

// equityLadder maps a daily percent change onto non-uniform bands.
func equityLadder(changePct float64) float64 {
	switch {
	case changePct > 10:
		return 20
	case changePct > 5:
		return 15
	case changePct > 2:
		return 10
	case changePct > 0:
		return 5
	case changePct > -2:
		return -5
	case changePct > -5:
		return -10
	case changePct > -10:
		return -15
	default:
		return -20
	}
}

// cryptoLadder uses wider bands reflecting crypto's expected range.
func cryptoLadder(changePct float64) float64 {
	switch {
	case changePct > 20:
		return 25
	case changePct > 10:
		return 20
	case changePct > 5:
		return 15
	case changePct > 2:
		return 10
	case changePct > 0:
		return 5
	case changePct > -2:
		return -5
	case changePct > -5:
		return -10
	case changePct > -10:
		return -15
	case changePct > -20:
		return -20
	default:
		return -25
	}
}

func newsVolumeBonus(count int) float64 {
	switch {
	case count >= 3:
		return 15
	case count >= 2:
		return 10
	case count >= 1:
		return 5
	default:
		return 0
	}
}

// Sentiment scores the news slice by keyword weighting. Articles that
// mention the ticker contribute wordlist hits and +20 relevance; articles
// that do not cost 10 relevance each.
func Sentiment(news []types.NewsItem, ticker string) types.SentimentScore {
	if len(news) == 0 {
		return types.SentimentScore{Score: 50, Label: "Neutral", Color: colorFor("Neutral")}
	}

	tickerLower := strings.ToLower(ticker)
	accumulator := 0.0
	relevance := 0.0

	for _, item := range news {
		text := strings.ToLower(item.Title + " " + item.Description)
		if !strings.Contains(text, tickerLower) {
			relevance -= 10
			continue
		}
		relevance += 20
		accumulator += 15 * float64(countHits(text, strongPositive))
		accumulator -= 15 * float64(countHits(text, strongNegative))
		accumulator += 5 * float64(countHits(text, moderatePositive))
		accumulator -= 5 * float64(countHits(text, moderateNegative))
	}

	scoreValue := clampRound(50 + accumulator + relevance/float64(len(news)))
	label := labelFor(scoreValue)
	return types.SentimentScore{Score: scoreValue, Label: label, Color: colorFor(label)}
}

func countHits(text string, words []string) int {
	hits := 0
	for _, w := range words {
		hits += strings.Count(text, w)
	}
	return hits
}

// labelFor maps a score onto its categorical label, inclusive lower bounds.
func labelFor(score int) string {
	switch {
	case score >= 70:
		return "Positive"
	case score >= 60:
		return "Slightly Positive"
	case score >= 55:
		return "Neutral-Positive"
	case score >= 45:
		return "Neutral"
	case score >= 40:
		return "Neutral-Negative"
	case score >= 30:
		return "Slightly Negative"
	default:
		return "Negative"
	}
}

func colorFor(label string) string {
	switch label {
	case "Positive":
		return "green"
	case "Slightly Positive":
		return "lightgreen"
	case "Neutral-Positive":
		return "yellowgreen"
	case "Neutral":
		return "gray"
	case "Neutral-Negative":
		return "khaki"
	case "Slightly Negative":
		return "orange"
	default:
		return "red"
	}
}

func clampRound(v float64) int {
	rounded := int(math.Round(v))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
