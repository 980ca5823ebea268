// internal/engine/dynamic/scraper.go
package dynamic

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/law-makers/curate/internal/config"
	"github.com/law-makers/curate/internal/engine"
	"github.com/law-makers/curate/internal/engine/metadata"
	"github.com/law-makers/curate/pkg/models"
	"github.com/rs/zerolog/log"
)

// Scraper renders pages in headless Chrome so script-built content and links
// are visible before extraction.
type Scraper struct {
	browserPool *BrowserPool
	timeout     time.Duration
	jsWait      time.Duration
	mu          sync.RWMutex
}

// New creates a browser-backed fetcher. pool may be nil and set later with
// SetBrowserPool.
func New(pool *BrowserPool, timeout, jsWait time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	return &Scraper{
		browserPool: pool,
		timeout:     timeout,
		jsWait:      jsWait,
	}
}

// SetBrowserPool updates the browser pool used by the scraper (thread-safe)
func (d *Scraper) SetBrowserPool(bp *BrowserPool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.browserPool = bp
}

func (d *Scraper) pool() *BrowserPool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.browserPool
}

// Name returns the name of this scraper
func (d *Scraper) Name() string {
	return "DynamicScraper"
}

// Fetch navigates a pooled tab to opts.URL, waits for the content element and
// the script settle delay, then extracts the rendered page.
func (d *Scraper) Fetch(ctx context.Context, opts models.RequestOptions) (*models.PageData, error) {
	start := time.Now()

	pool := d.pool()
	if pool == nil {
		return nil, engine.NewEngineError(engine.ErrCodeBrowserStart, "browser pool not initialized", engine.ErrBrowserStart)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = d.timeout
	}
	selector := opts.Selector
	if selector == "" {
		selector = metadata.SelectorFor(opts.URL)
	}

	bctx, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire browser from pool: %w", err)
	}
	defer pool.Release(bctx)

	runCtx, cancel := context.WithTimeout(bctx.Ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var (
		mu       sync.Mutex
		status   int64
		rendered string
	)
	chromedp.ListenTarget(runCtx, func(ev interface{}) {
		resp, ok := ev.(*network.EventResponseReceived)
		if !ok || resp.Type != network.ResourceTypeDocument {
			return
		}
		mu.Lock()
		if status == 0 {
			status = resp.Response.Status
		}
		mu.Unlock()
	})

	page := &models.PageData{
		URL:       opts.URL,
		Fetcher:   d.Name(),
		FetchedAt: start,
	}

	err = chromedp.Run(runCtx,
		network.Enable(),
		chromedp.Navigate(opts.URL),
		chromedp.WaitReady(selector, chromedp.ByQuery),
		chromedp.Sleep(d.jsWait),
		chromedp.OuterHTML("html", &rendered, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, engine.NewEngineError(engine.ErrCodeTimeout,
				fmt.Sprintf("rendering %s timed out after %s", opts.URL, timeout), errors.Join(engine.ErrTimeout, err))
		}
		return nil, engine.NewEngineError(engine.ErrCodeNavigation,
			fmt.Sprintf("rendering %s failed", opts.URL), errors.Join(engine.ErrNavigation, err))
	}

	if err := extractRendered(runCtx, selector, rendered, page); err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeParseError, "failed to parse rendered HTML", errors.Join(engine.ErrParseError, err)).ForURL(opts.URL)
	}

	mu.Lock()
	page.StatusCode = int(status)
	mu.Unlock()
	page.ResponseTime = time.Since(start).Milliseconds()

	log.Debug().
		Str("url", opts.URL).
		Int("status", page.StatusCode).
		Int("anchors", len(page.Anchors)).
		Int64("response_time_ms", page.ResponseTime).
		Msg("Rendered fetch completed")

	return page, nil
}
