package sources

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"ticker-pulse/internal/trace"
	"ticker-pulse/internal/types"
)

// Edgar pulls recent Form 4 insider filings from the SEC full-text atom
// feed. The endpoint is keyless but requires an identifying User-Agent.
type Edgar struct {
	client *resty.Client
}

func NewEdgar() *Edgar {
	return &Edgar{client: newClient("https://www.sec.gov")}
}

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title   string `xml:"title"`
	Updated string `xml:"updated"`
}

func (e *Edgar) FetchFilings(ctx context.Context, symbol string) ([]types.RawFiling, error) {
	ctx, span := trace.StartSpan(ctx, "edgar-filings")
	defer span.End()

	resp, err := e.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"action":  "getcompany",
			"company": symbol,
			"type":    "4",
			"owner":   "include",
			"count":   "40",
			"output":  "atom",
		}).
		Get("/cgi-bin/browse-edgar")
	if err != nil {
		return nil, fmt.Errorf("edgar filings %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("edgar filings %s: http %d", symbol, resp.StatusCode())
	}

	var feed atomFeed
	if err := xml.Unmarshal(resp.Body(), &feed); err != nil {
		return nil, fmt.Errorf("edgar filings %s: parse atom: %w", symbol, err)
	}

	now := time.Now()
	filings := make([]types.RawFiling, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		if entry.Title == "" {
			continue
		}
		ageDays := 0
		if updated, err := time.Parse(time.RFC3339, entry.Updated); err == nil {
			ageDays = int(now.Sub(updated).Hours() / 24)
		}
		filings = append(filings, types.RawFiling{
			Title:    entry.Title,
			FiledAgo: ageDays,
		})
	}
	return filings, nil
}
