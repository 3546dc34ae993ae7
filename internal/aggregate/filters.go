package aggregate

import (
	"strings"

	"ticker-pulse/internal/types"
)

const (
	maxSurfacedNews    = 3
	maxSurfacedInsider = 5
	insiderWindowDays  = 90
)

var financeKeywords = []string{
	"stock", "shares", "trading", "investor", "market", "price",
	"earnings", "revenue", "quarter", "analyst", "upgrade", "downgrade",
	"wall street", "profit", "loss",
}

var saleTokens = []string{"sale", "sell", "disposed"}
var buyTokens = []string{"purchase", "buy", "acquired"}

// Role keywords in priority order. First match wins.
var rolePriority = []struct {
	keyword string
	role    string
}{
	{"ceo", "CEO"},
	{"cfo", "CFO"},
	{"coo", "COO"},
	{"director", "Director"},
	{"president", "President"},
	{"officer", "Officer"},
}

// filterNews keeps an article only when its title mentions the ticker or
// a company-name token and the text carries at least one finance keyword.
// Provider order is newest first already, so the first survivors win.
func filterNews(items []types.NewsItem, ticker, companyName string) []types.NewsItem {
	tickerLower := strings.ToLower(ticker)
	nameTokens := companyTokens(companyName)

	kept := make([]types.NewsItem, 0, maxSurfacedNews)
	for _, item := range items {
		titleLower := strings.ToLower(item.Title)

		mentioned := strings.Contains(titleLower, tickerLower)
		if !mentioned {
			for _, token := range nameTokens {
				if strings.Contains(titleLower, token) {
					mentioned = true
					break
				}
			}
		}
		if !mentioned {
			continue
		}

		combined := titleLower + " " + strings.ToLower(item.Description)
		if !containsAny(combined, financeKeywords) {
			continue
		}

		kept = append(kept, item)
		if len(kept) == maxSurfacedNews {
			break
		}
	}
	return kept
}

// capNews truncates without relevance filtering, for the crypto path.
func capNews(items []types.NewsItem) []types.NewsItem {
	if len(items) > maxSurfacedNews {
		return items[:maxSurfacedNews]
	}
	return items
}

// companyTokens splits a company name into lower-cased tokens longer
// than 3 characters, dropping suffixes like "Inc" that match everything.
func companyTokens(name string) []string {
	tokens := []string{}
	for _, token := range strings.Fields(strings.ToLower(name)) {
		token = strings.Trim(token, ".,")
		if len(token) > 3 {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// classifyFilings infers role and transaction type for each filing within
// the 90-day window, returning at most 5 BUY/SELL entries newest first
// plus the net buy-minus-sell flow across the whole window.
func classifyFilings(filings []types.RawFiling) ([]types.InsiderTransaction, int) {
	surfaced := make([]types.InsiderTransaction, 0, maxSurfacedInsider)
	flow := 0

	for _, filing := range filings {
		if filing.FiledAgo > insiderWindowDays {
			continue
		}

		titleLower := strings.ToLower(filing.Title)
		txType := inferType(titleLower)
		if txType == types.InsiderOther {
			continue
		}

		switch txType {
		case types.InsiderBuy:
			flow++
		case types.InsiderSell:
			flow--
		}

		if len(surfaced) < maxSurfacedInsider {
			surfaced = append(surfaced, types.InsiderTransaction{
				Role:    inferRole(titleLower),
				Type:    txType,
				AgeDays: filing.FiledAgo,
				Title:   filing.Title,
			})
		}
	}
	return surfaced, flow
}

func inferType(titleLower string) types.InsiderType {
	hasSale := containsAny(titleLower, saleTokens)
	hasBuy := containsAny(titleLower, buyTokens)
	switch {
	case hasSale && !hasBuy:
		return types.InsiderSell
	case hasBuy && !hasSale:
		return types.InsiderBuy
	default:
		return types.InsiderOther
	}
}

func inferRole(titleLower string) string {
	for _, r := range rolePriority {
		if strings.Contains(titleLower, r.keyword) {
			return r.role
		}
	}
	return "Insider"
}
