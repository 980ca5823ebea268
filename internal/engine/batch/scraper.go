// internal/engine/batch/scraper.go
package batch

import (
	"context"
	"io"
	"time"

	"github.com/law-makers/curate/internal/cache"
	"github.com/law-makers/curate/internal/config"
	"github.com/law-makers/curate/internal/engine"
	"github.com/law-makers/curate/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Result is the outcome of fetching one URL. A failed fetch carries Err and
// no page; callers treat it as a page without links.
type Result struct {
	URL    string
	Page   *models.PageData
	Err    error
	Cached bool
}

// Anchors returns the extracted anchors, or nil for a failed fetch.
func (r Result) Anchors() []models.Anchor {
	if r.Page == nil {
		return nil
	}
	return r.Page.Anchors
}

// Pool runs a Fetcher over batches of URLs with bounded concurrency. Every
// URL reaches the fetcher at most once per Pool: results are memoized in the
// cache, repeats within a batch are fetched once, and concurrent batches
// asking for the same URL share one fetch.
type Pool struct {
	fetcher     engine.Fetcher
	cache       cache.Cache
	concurrency int
	timeout     time.Duration
	progress    io.Writer
	group       singleflight.Group
}

// Option configures a Pool.
type Option func(*Pool)

// WithProgress draws a progress bar for each batch on w. A nil writer
// disables it.
func WithProgress(w io.Writer) Option {
	return func(p *Pool) {
		p.progress = w
	}
}

// WithTimeout sets the per-URL timeout passed to the fetcher.
func WithTimeout(d time.Duration) Option {
	return func(p *Pool) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// New creates a fetch pool. A concurrency <= 0 falls back to the default width.
func New(fetcher engine.Fetcher, c cache.Cache, concurrency int, opts ...Option) *Pool {
	if concurrency <= 0 {
		concurrency = config.DefaultConcurrency
	}
	p := &Pool{
		fetcher:     fetcher,
		cache:       c,
		concurrency: concurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FetchAll fetches urls and returns one Result per input, with result[i]
// belonging to urls[i] whatever the completion order. Failures never abort
// the batch. Successful fetches are added to the cache after the whole batch
// has joined, in input order, so cache order does not depend on scheduling.
func (p *Pool) FetchAll(ctx context.Context, urls []string) []Result {
	results := make([]Result, len(urls))
	if len(urls) == 0 {
		return results
	}

	// Repeated URLs are fetched once, at their first index.
	first := make(map[string]int, len(urls))
	distinct := make([]int, 0, len(urls))
	for i, u := range urls {
		if _, seen := first[u]; !seen {
			first[u] = i
			distinct = append(distinct, i)
		}
	}

	start := time.Now()
	bar := p.newBar(len(distinct))

	var g errgroup.Group
	g.SetLimit(p.concurrency)

	for _, i := range distinct {
		i := i
		u := urls[i]
		g.Go(func() error {
			results[i] = p.fetchOne(ctx, u)
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	if bar != nil {
		_ = bar.Finish()
	}

	for i, u := range urls {
		if j := first[u]; j != i {
			results[i] = results[j]
		}
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		if !r.Cached {
			p.cache.Set(r.URL, r.Page)
		}
	}

	log.Debug().
		Int("urls", len(urls)).
		Int("failed", failed).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Str("fetcher", p.fetcher.Name()).
		Msg("Batch fetch complete")

	return results
}

func (p *Pool) fetchOne(ctx context.Context, u string) Result {
	if page, ok := p.cache.Get(u); ok {
		return Result{URL: u, Page: page, Cached: true}
	}

	v, err, shared := p.group.Do(u, func() (interface{}, error) {
		return p.fetcher.Fetch(ctx, models.RequestOptions{URL: u, Timeout: p.timeout})
	})
	if err != nil {
		log.Error().Err(err).Str("url", u).Str("code", string(engine.CodeOf(err))).Msg("Fetch failed, continuing without its links")
		return Result{URL: u, Err: err}
	}

	page := v.(*models.PageData)
	log.Debug().
		Str("url", u).
		Int("links", len(page.Anchors)).
		Bool("shared", shared).
		Msg("Fetched")
	return Result{URL: u, Page: page}
}

func (p *Pool) newBar(n int) *progressbar.ProgressBar {
	if p.progress == nil {
		return nil
	}
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(p.progress),
		progressbar.OptionSetDescription("Fetching"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
