package narrative

import (
	"context"
	"strings"
	"testing"

	"ticker-pulse/internal/store"
	"ticker-pulse/internal/types"
)

func TestParseSectionsTitledFormat(t *testing.T) {
	text := "1. MARKET CONTEXT\nBitcoin moved up today.\n\n" +
		"2. KEY WATCHPOINTS\nVolume is rising.\n\n" +
		"3. RISK CONSIDERATIONS\nVolatility remains high.\n\n" +
		"4. RESEARCH CHECKLIST\nRead the whitepaper."

	sections := parseSections(text, singleModeTitles)

	if len(sections) != 4 {
		t.Fatalf("Expected 4 sections, got %d", len(sections))
	}
	if sections[0].Title != "MARKET CONTEXT" {
		t.Errorf("Expected MARKET CONTEXT, got %q", sections[0].Title)
	}
	if sections[0].Content != "Bitcoin moved up today." {
		t.Errorf("Unexpected first body %q", sections[0].Content)
	}
	if sections[3].Title != "RESEARCH CHECKLIST" || sections[3].Content != "Read the whitepaper." {
		t.Errorf("Unexpected last section %+v", sections[3])
	}
}

func TestParseSectionsPositionalFallback(t *testing.T) {
	// Titles inline with the body defeat the line-anchored pattern but
	// still split on numeric prefixes.
	text := "1. The company sells phones. 2. Revenue keeps growing. 3. Competition is fierce."

	sections := parseSections(text, simplifiedTitles)

	if len(sections) != 3 {
		t.Fatalf("Expected 3 sections from fallback, got %d", len(sections))
	}
	if sections[0].Title != "WHAT THEY DO" {
		t.Errorf("Expected positional title WHAT THEY DO, got %q", sections[0].Title)
	}
	if !strings.Contains(sections[1].Content, "Revenue") {
		t.Errorf("Unexpected second body %q", sections[1].Content)
	}
}

func TestParseSectionsUnavailable(t *testing.T) {
	cases := []string{
		"",
		"Narrative commentary is temporarily unavailable.",
		"1. only one part here",
	}
	for _, text := range cases {
		sections := parseSections(text, singleModeTitles)
		if len(sections) != 0 {
			t.Errorf("Text %q: expected empty section list, got %d", text, len(sections))
		}
	}
}

type scriptedCompleter struct {
	responses map[string]string
	calls     int
}

func (s *scriptedCompleter) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	s.calls++
	for marker, response := range s.responses {
		if strings.Contains(prompt, marker) {
			return response, nil
		}
	}
	return "", nil
}

func TestComposeDualMode(t *testing.T) {
	cfg := store.DefaultConfig()
	completer := &scriptedCompleter{responses: map[string]string{
		"complete beginner": "1. WHAT THEY DO\nPhones.\n2. GOOD SIGNS\nGrowth.\n3. WARNING SIGNS\nRivals.",
		"research assistant": "1. BUSINESS MODEL\nHardware margins.\n" +
			"2. KEY RESEARCH QUESTIONS\nServices growth?\n3. RISK FACTORS\nRegulation.",
	}}
	composer := NewComposer(cfg, completer)
	bundle := &types.SignalBundle{Ticker: "AAPL", Classification: types.Equity}

	sections := composer.Compose(context.Background(), bundle, 60, types.SentimentScore{Score: 50, Label: "Neutral"})

	if completer.calls != 2 {
		t.Errorf("Expected 2 completions in dual mode, got %d", completer.calls)
	}
	if len(sections) != 6 {
		t.Fatalf("Expected 6 sections, got %d", len(sections))
	}
	if sections[0].Title != "WHAT THEY DO" || sections[3].Title != "BUSINESS MODEL" {
		t.Errorf("Expected simplified sections before detailed, got %q then %q",
			sections[0].Title, sections[3].Title)
	}
}

func TestComposeSingleModeForCrypto(t *testing.T) {
	cfg := store.DefaultConfig()
	completer := &scriptedCompleter{responses: map[string]string{
		"BTC": "1. MARKET CONTEXT\nUp day.\n2. KEY WATCHPOINTS\nVolume.\n" +
			"3. RISK CONSIDERATIONS\nSwings.\n4. RESEARCH CHECKLIST\nCustody.",
	}}
	composer := NewComposer(cfg, completer)
	bundle := &types.SignalBundle{Ticker: "BTC", Classification: types.Crypto}

	sections := composer.Compose(context.Background(), bundle, 70, types.SentimentScore{Score: 55, Label: "Neutral-Positive"})

	if completer.calls != 1 {
		t.Errorf("Expected 1 completion for crypto, got %d", completer.calls)
	}
	if len(sections) != 4 {
		t.Fatalf("Expected 4 sections, got %d", len(sections))
	}
}

func TestComposeReducedProfileUsesSingleMode(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.Profile = "reduced"
	completer := &scriptedCompleter{responses: map[string]string{}}
	composer := NewComposer(cfg, completer)
	bundle := &types.SignalBundle{Ticker: "MSFT", Classification: types.Equity}

	sections := composer.Compose(context.Background(), bundle, 50, types.SentimentScore{Score: 50, Label: "Neutral"})

	if completer.calls != 1 {
		t.Errorf("Expected 1 completion in reduced profile, got %d", completer.calls)
	}
	if len(sections) != 0 {
		t.Errorf("Expected empty sections for empty completion, got %d", len(sections))
	}
}

func TestPromptCarriesBundleFacts(t *testing.T) {
	bundle := &types.SignalBundle{
		Ticker:         "AAPL",
		Classification: types.Equity,
		Quote: &types.QuoteSnapshot{
			Price:     types.Float(230.10),
			ChangePct: types.Float(1.2),
			MarketCap: types.Float(3.456e12),
		},
		Profile: &types.CompanyProfile{Name: "Apple Inc.", Sector: "Technology", Industry: "Consumer Electronics"},
		News:    []types.NewsItem{{Title: "Apple earnings beat"}},
	}

	prompt := detailedPrompt(bundle, 72, types.SentimentScore{Score: 65, Label: "Slightly Positive"})

	for _, want := range []string{
		"Price: 230.10",
		"Market cap: $3456.00B",
		"Apple earnings beat",
		"interest score: 72/100",
		"1. BUSINESS MODEL",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}

func TestPromptOmitsAbsentFields(t *testing.T) {
	bundle := &types.SignalBundle{Ticker: "XYZ", Classification: types.Equity}

	prompt := simplifiedPrompt(bundle, 50, types.SentimentScore{Score: 50, Label: "Neutral"})

	for _, banned := range []string{"Price:", "Market cap:", "Insider activity", "Social sentiment"} {
		if strings.Contains(prompt, banned) {
			t.Errorf("Prompt should omit %q when data is absent", banned)
		}
	}
}
