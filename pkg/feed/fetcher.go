package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/capawawa/growmies-nj-bot-sub000/pkg/domain"
)

// Fetcher pulls RSS/Atom feeds and converts entries into raw items for the
// ingestion pipeline. It backs the operator-triggered fallback path for when
// the webhook provider goes quiet.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a feed fetcher with the given per-request timeout
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if userAgent == "" {
		userAgent = "feedbridge/1.0"
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// Fetch retrieves and parses the feed at url, returning an envelope in the
// same shape the webhook provider delivers
func (f *Fetcher) Fetch(ctx context.Context, url string) (*domain.InboundEnvelope, error) {
	body, err := f.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	parsed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	env := &domain.InboundEnvelope{
		SourceFeedID:    url,
		SourceFeedTitle: parsed.Title,
		Items:           make([]domain.RawItem, 0, len(parsed.Items)),
	}

	for _, item := range parsed.Items {
		raw := domain.RawItem{
			GUID:        item.GUID,
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			Content:     item.Content,
			PublishedAt: item.Published,
		}
		if raw.GUID == "" {
			raw.GUID = item.Link
		}
		if item.Author != nil {
			raw.Author = item.Author.Name
		}
		for _, enc := range item.Enclosures {
			if enc == nil || enc.URL == "" {
				continue
			}
			raw.Enclosures = append(raw.Enclosures, domain.Enclosure{URL: enc.URL, MediaType: enc.Type})
		}
		env.Items = append(env.Items, raw)
	}

	return env, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}
