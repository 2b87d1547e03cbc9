package extract

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/truthscope/truthscope/internal/model"
	"github.com/truthscope/truthscope/internal/util"
	"github.com/truthscope/truthscope/internal/worker"
)

// Extractor fetches article pages and extracts their readable text.
// Fetching is polite: robots.txt is honored and requests are rate
// limited per domain.
type Extractor struct {
	fetcher    *Fetcher
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	strategies []Strategy
	workers    int
	logger     *slog.Logger
}

// NewExtractor creates an extractor with the given strategy chain.
// Strategies are tried in order for each article.
func NewExtractor(fetcher *Fetcher, robots *util.RobotsChecker, limiter *worker.Limiter, workers int, strategies ...Strategy) *Extractor {
	if workers <= 0 {
		workers = 4
	}
	return &Extractor{
		fetcher:    fetcher,
		robots:     robots,
		limiter:    limiter,
		strategies: strategies,
		workers:    workers,
		logger:     slog.Default().With("component", "extractor"),
	}
}

// ExtractAll fetches and extracts evidence text for every article
// concurrently. A failed article keeps an empty Evidence field and the
// batch continues: the pipeline degrades to the search snippet rather
// than dropping a ranked source.
func (e *Extractor) ExtractAll(ctx context.Context, articles []model.Article) []model.Article {
	if len(articles) == 0 {
		return articles
	}

	out := make([]model.Article, len(articles))
	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup

	for i, art := range articles {
		wg.Add(1)
		go func(idx int, art model.Article) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			text, err := e.extractOne(ctx, art.URL)
			if err != nil {
				e.logger.Warn("extraction failed", "url", art.URL, "err", err)
			} else {
				art.Evidence = text
			}
			out[idx] = art
		}(i, art)
	}

	wg.Wait()
	return out
}

// extractOne fetches one URL and runs the strategy chain over it
func (e *Extractor) extractOne(ctx context.Context, rawURL string) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf("empty URL")
	}

	crawlDelay := time.Duration(0)
	if e.robots != nil {
		allowed, delay, err := e.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return "", fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return "", fmt.Errorf("disallowed by robots.txt")
		}
		crawlDelay = delay
	}

	if e.limiter != nil {
		if err := e.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
			return "", fmt.Errorf("rate limit: %w", err)
		}
	}

	html, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}

	var lastErr error
	for _, strategy := range e.strategies {
		text, err := strategy.Extract(ctx, html)
		if err == nil {
			return text, nil
		}
		e.logger.Debug("strategy failed", "strategy", strategy.Name(), "url", rawURL, "err", err)
		lastErr = err
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no strategies configured")
	}
	return "", fmt.Errorf("all strategies failed: %w", lastErr)
}
