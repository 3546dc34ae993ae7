package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/gocolly/colly/v2"

	"ticker-pulse/internal/interfaces"
	"ticker-pulse/internal/logger"
	"ticker-pulse/internal/trace"
	"ticker-pulse/internal/types"
)

const maxRawArticles = 20

// NewsAPI searches recent articles. The domain-restricted query runs
// first; a broader keyword query without domain restriction runs when it
// returns nothing, and a Google News scrape is the keyless last resort.
type NewsAPI struct {
	client *resty.Client
	apiKey string
}

func NewNewsAPI() *NewsAPI {
	return &NewsAPI{
		client: newClient("https://newsapi.org/v2"),
		apiKey: os.Getenv("NEWS_API_KEY"),
	}
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (n *NewsAPI) Search(ctx context.Context, q interfaces.NewsQuery) ([]types.NewsItem, error) {
	ctx, span := trace.StartSpan(ctx, "news-search")
	defer span.End()

	if n.apiKey == "" {
		return n.scrapeGoogleNews(ctx, q)
	}

	items, err := n.query(ctx, q.Query, q.Domains, q.Since)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		// Broader keyword query, no domain restriction.
		logger.Debug(ctx, "Domain-restricted news query empty, running fallback", "ticker", q.Ticker)
		items, err = n.query(ctx, q.Ticker+" stock market", nil, q.Since)
		if err != nil {
			return nil, err
		}
	}
	if len(items) == 0 {
		return n.scrapeGoogleNews(ctx, q)
	}
	return items, nil
}

func (n *NewsAPI) query(ctx context.Context, query string, domains []string, since time.Time) ([]types.NewsItem, error) {
	params := map[string]string{
		"q":        query,
		"language": "en",
		"sortBy":   "publishedAt",
		"pageSize": fmt.Sprintf("%d", maxRawArticles),
		"apiKey":   n.apiKey,
	}
	if len(domains) > 0 {
		params["domains"] = strings.Join(domains, ",")
	}
	if !since.IsZero() {
		params["from"] = since.UTC().Format(time.RFC3339)
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/everything")
	if err != nil {
		return nil, fmt.Errorf("news search %q: %w", query, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("news search http %d", resp.StatusCode())
	}

	var r newsAPIResponse
	if err := json.Unmarshal(resp.Body(), &r); err != nil {
		return nil, fmt.Errorf("news search payload: %w", err)
	}
	if r.Status != "ok" {
		return nil, fmt.Errorf("news search status %q", r.Status)
	}

	now := time.Now()
	items := make([]types.NewsItem, 0, len(r.Articles))
	for _, a := range r.Articles {
		if a.Title == "" {
			continue
		}
		age := 0.0
		if published, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			age = now.Sub(published).Hours()
		}
		items = append(items, types.NewsItem{
			Title:       a.Title,
			Description: stripHTML(a.Description),
			Source:      a.Source.Name,
			AgeHours:    age,
			URL:         a.URL,
		})
	}
	return items, nil
}

// scrapeGoogleNews is the keyless fallback. Scraped results have no
// reliable timestamp, so AgeHours stays zero.
func (n *NewsAPI) scrapeGoogleNews(ctx context.Context, q interfaces.NewsQuery) ([]types.NewsItem, error) {
	items := []types.NewsItem{}

	c := colly.NewCollector(
		colly.AllowedDomains("news.google.com", "www.google.com"),
	)
	c.SetRequestTimeout(20 * time.Second)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", browserUserAgent)
	})

	c.OnHTML("article", func(e *colly.HTMLElement) {
		if len(items) >= maxRawArticles {
			return
		}

		title := e.ChildText("h3, h4")
		link := e.ChildAttr("a", "href")
		if title == "" || link == "" {
			return
		}

		// Clean up Google News redirect URL
		if strings.HasPrefix(link, "./articles/") {
			link = "https://news.google.com" + link[1:]
		}

		items = append(items, types.NewsItem{
			Title:  title,
			Source: "GoogleNews",
			URL:    link,
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "Google News scrape error", err, "url", r.Request.URL.String())
	})

	searchQuery := url.QueryEscape(q.Query)
	searchURL := fmt.Sprintf("https://news.google.com/search?q=%s&hl=en-US&gl=US&ceid=US:en", searchQuery)

	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("google news scrape: %w", err)
	}
	c.Wait()

	logger.Debug(ctx, "Google News scrape completed", "ticker", q.Ticker, "articles", len(items))
	return items, nil
}

// stripHTML flattens provider descriptions that arrive with markup.
func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
