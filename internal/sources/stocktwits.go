package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/go-resty/resty/v2"

	"ticker-pulse/internal/trace"
	"ticker-pulse/internal/types"
)

const maxSocialMessages = 20

// Stocktwits samples the public symbol stream and tallies the bullish
// and bearish labels users attach to their messages. Unlabeled messages
// are ignored; a stream with no labeled messages yields no snapshot.
type Stocktwits struct {
	client *resty.Client
}

func NewStocktwits() *Stocktwits {
	return &Stocktwits{client: newClient("https://api.stocktwits.com/api/2")}
}

type stocktwitsStream struct {
	Messages []struct {
		Entities struct {
			Sentiment *struct {
				Basic string `json:"basic"`
			} `json:"sentiment"`
		} `json:"entities"`
	} `json:"messages"`
}

func (s *Stocktwits) FetchSentiment(ctx context.Context, symbol string) (*types.SocialSentimentSnapshot, error) {
	ctx, span := trace.StartSpan(ctx, "stocktwits-sentiment")
	defer span.End()

	resp, err := s.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/streams/symbol/%s.json", strings.ToUpper(symbol)))
	if err != nil {
		return nil, fmt.Errorf("stocktwits %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("stocktwits %s: http %d", symbol, resp.StatusCode())
	}

	var stream stocktwitsStream
	if err := json.Unmarshal(resp.Body(), &stream); err != nil {
		return nil, fmt.Errorf("stocktwits %s: parse stream: %w", symbol, err)
	}

	bullish, bearish := 0, 0
	seen := 0
	for _, msg := range stream.Messages {
		if seen >= maxSocialMessages {
			break
		}
		seen++
		if msg.Entities.Sentiment == nil {
			continue
		}
		switch msg.Entities.Sentiment.Basic {
		case "Bullish":
			bullish++
		case "Bearish":
			bearish++
		}
	}

	labeled := bullish + bearish
	if labeled == 0 {
		return nil, fmt.Errorf("stocktwits %s: no labeled messages", symbol)
	}

	bullishPct := int(math.Round(float64(bullish) / float64(labeled) * 100))
	return &types.SocialSentimentSnapshot{
		Source:     "Stocktwits",
		BullishPct: bullishPct,
		BearishPct: 100 - bullishPct,
		SampleSize: labeled,
		Label:      socialLabel(bullishPct),
	}, nil
}

func socialLabel(bullishPct int) string {
	switch {
	case bullishPct >= 70:
		return "Strongly Bullish"
	case bullishPct >= 55:
		return "Bullish"
	case bullishPct > 45:
		return "Mixed"
	case bullishPct > 30:
		return "Bearish"
	default:
		return "Strongly Bearish"
	}
}
