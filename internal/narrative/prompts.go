package narrative

import (
	"fmt"
	"strings"

	"ticker-pulse/internal/types"
)

// Fixed section title vocabularies. The parser falls back to these when
// the model drops the numbered-title format.
var (
	singleModeTitles = []string{
		"MARKET CONTEXT", "KEY WATCHPOINTS", "RISK CONSIDERATIONS", "RESEARCH CHECKLIST",
	}
	simplifiedTitles = []string{
		"WHAT THEY DO", "GOOD SIGNS", "WARNING SIGNS",
	}
	detailedTitles = []string{
		"BUSINESS MODEL", "KEY RESEARCH QUESTIONS", "RISK FACTORS",
	}
)

func sectionContract(titles []string) string {
	var sb strings.Builder
	sb.WriteString("Structure the response as numbered sections, each title uppercase on its own line:\n")
	for i, title := range titles {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, title)
	}
	sb.WriteString("Do not add other sections, greetings, or disclaimers.\n")
	return sb.String()
}

// dataSummary renders the bundle's available facts as prompt lines.
// Absent fields are omitted entirely rather than rendered as zeros.
func dataSummary(bundle *types.SignalBundle, interest int, sentiment types.SentimentScore) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Asset: %s (%s)\n", bundle.Ticker, bundle.Classification)

	if q := bundle.Quote; q != nil {
		if q.Price != nil {
			fmt.Fprintf(&sb, "Price: %.2f\n", *q.Price)
		}
		if q.ChangePct != nil {
			fmt.Fprintf(&sb, "Change: %.2f%%\n", *q.ChangePct)
		}
		if q.MarketCap != nil {
			fmt.Fprintf(&sb, "Market cap: $%.2fB\n", *q.MarketCap/1e9)
		}
		if q.PERatio != nil {
			fmt.Fprintf(&sb, "P/E: %.1f\n", *q.PERatio)
		}
		if q.High52W != nil && q.Low52W != nil {
			fmt.Fprintf(&sb, "52-week range: %.2f - %.2f\n", *q.Low52W, *q.High52W)
		}
		if q.NextEarnings != nil {
			fmt.Fprintf(&sb, "Next earnings: %s\n", *q.NextEarnings)
		}
	}

	if p := bundle.Profile; p != nil {
		if p.Name != "" {
			fmt.Fprintf(&sb, "Company: %s\n", p.Name)
		}
		if p.Sector != "" {
			fmt.Fprintf(&sb, "Sector: %s, Industry: %s\n", p.Sector, p.Industry)
		}
		if p.Description != "" {
			fmt.Fprintf(&sb, "Business: %s\n", truncate(p.Description, 400))
		}
	}

	if r := bundle.Recommendations; r != nil {
		total := r.StrongBuy + r.Buy + r.Hold + r.Sell + r.StrongSell
		if total > 0 {
			fmt.Fprintf(&sb, "Analyst recommendations: %d strong buy, %d buy, %d hold, %d sell, %d strong sell\n",
				r.StrongBuy, r.Buy, r.Hold, r.Sell, r.StrongSell)
		}
	}

	if len(bundle.News) > 0 {
		sb.WriteString("Recent headlines:\n")
		for _, item := range bundle.News {
			fmt.Fprintf(&sb, "- %s\n", item.Title)
		}
	}

	if len(bundle.Insider) > 0 {
		fmt.Fprintf(&sb, "Insider activity (90 days, net flow %+d):\n", bundle.InsiderFlow)
		for _, tx := range bundle.Insider {
			fmt.Fprintf(&sb, "- %s %s, %d days ago\n", tx.Role, tx.Type, tx.AgeDays)
		}
	}

	if s := bundle.Social; s != nil {
		fmt.Fprintf(&sb, "Social sentiment (%s, %d messages): %d%% bullish, %s\n",
			s.Source, s.SampleSize, s.BullishPct, s.Label)
	}

	fmt.Fprintf(&sb, "Mechanical interest score: %d/100\n", interest)
	fmt.Fprintf(&sb, "News sentiment score: %d/100 (%s)\n", sentiment.Score, sentiment.Label)

	return sb.String()
}

// singleModePrompt covers crypto and the reduced equity profile.
func singleModePrompt(bundle *types.SignalBundle, interest int, sentiment types.SentimentScore) string {
	var sb strings.Builder
	sb.WriteString("You are an educational market commentator. Using only the data below, write ")
	sb.WriteString("roughly 220 words of plain, neutral commentary for a retail reader. ")
	sb.WriteString("Describe what is happening, what to watch, and what could go wrong. ")
	sb.WriteString("Never give buy or sell advice.\n\n")
	sb.WriteString(dataSummary(bundle, interest, sentiment))
	sb.WriteString("\n")
	sb.WriteString(sectionContract(singleModeTitles))
	return sb.String()
}

// simplifiedPrompt is the beginner-facing half of the equity dual mode.
func simplifiedPrompt(bundle *types.SignalBundle, interest int, sentiment types.SentimentScore) string {
	var sb strings.Builder
	sb.WriteString("You are explaining a public company to a complete beginner. Using only the ")
	sb.WriteString("data below, write roughly 150 words in simple everyday language. ")
	sb.WriteString("No jargon, no buy or sell advice.\n\n")
	sb.WriteString(dataSummary(bundle, interest, sentiment))
	sb.WriteString("\n")
	sb.WriteString(sectionContract(simplifiedTitles))
	return sb.String()
}

// detailedPrompt is the research-oriented half of the equity dual mode.
func detailedPrompt(bundle *types.SignalBundle, interest int, sentiment types.SentimentScore) string {
	var sb strings.Builder
	sb.WriteString("You are an educational equity research assistant. Using only the data below, ")
	sb.WriteString("write roughly 250 words of structured research notes. Frame open questions a ")
	sb.WriteString("diligent reader should answer before forming a view. Never give buy or sell advice.\n\n")
	sb.WriteString(dataSummary(bundle, interest, sentiment))
	sb.WriteString("\n")
	sb.WriteString(sectionContract(detailedTitles))
	return sb.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
