package feed

import (
	"context"
	"sync"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/capawawa/growmies-nj-bot-sub000/pkg/domain"
)

//go:generate moq -out mocks/processor.go -pkg mocks -skip-ensure -fmt goimports . BatchProcessor

// BatchProcessor drives normalized posts through the ingestion pipeline
type BatchProcessor interface {
	ProcessBatch(ctx context.Context, posts []domain.CanonicalPost) domain.BatchResult
}

// Source is one configured fallback feed
type Source struct {
	URL     string `yaml:"url" json:"url"`
	GuildID string `yaml:"guild_id" json:"guild_id"`
}

// Puller fetches the configured fallback feeds on operator demand and pushes
// their items through the same pipeline the webhook path uses. It runs only
// inside a request, never as a background loop.
type Puller struct {
	fetcher    *Fetcher
	normalizer *Normalizer
	processor  BatchProcessor
	sources    []Source
	maxWorkers int
}

// NewPuller creates a puller over the given sources. maxWorkers bounds
// concurrent feed fetches; values below 1 run sequentially.
func NewPuller(fetcher *Fetcher, normalizer *Normalizer, processor BatchProcessor, sources []Source, maxWorkers int) *Puller {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Puller{
		fetcher:    fetcher,
		normalizer: normalizer,
		processor:  processor,
		sources:    sources,
		maxWorkers: maxWorkers,
	}
}

// PullAll fetches every configured source concurrently and aggregates the
// processing outcomes. A source that fails to fetch is logged and skipped;
// it never aborts the other sources.
func (p *Puller) PullAll(ctx context.Context) domain.BatchResult {
	lgr.Printf("[INFO] pulling %d fallback feeds", len(p.sources))

	var mu sync.Mutex
	var total domain.BatchResult

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxWorkers)

	for _, src := range p.sources {
		g.Go(func() error {
			env, err := p.fetcher.Fetch(ctx, src.URL)
			if err != nil {
				lgr.Printf("[WARN] failed to pull feed %s: %v", src.URL, err)
				return nil
			}

			posts := make([]domain.CanonicalPost, 0, len(env.Items))
			for _, item := range env.Items {
				posts = append(posts, p.normalizer.FromRaw(item, domain.SourceFeed, src.GuildID))
			}

			res := p.processor.ProcessBatch(ctx, posts)
			mu.Lock()
			for _, item := range res.PerItem {
				total.Add(item)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		lgr.Printf("[ERROR] feed pull error: %v", err)
	}

	lgr.Printf("[INFO] feed pull completed: %d items, %d succeeded, %d filtered, %d failed",
		total.Total, total.Succeeded, total.Filtered, total.Failed)
	return total
}
