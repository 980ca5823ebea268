// internal/engine/dynamic/browser_pool.go
package dynamic

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"
	"github.com/law-makers/curate/internal/config"
	"github.com/law-makers/curate/internal/engine"
	"github.com/rs/zerolog/log"
)

// BrowserPool manages a pool of reusable Chrome browser contexts.
// One Chrome process is shared; each context is a tab kept warm between fetches.
type BrowserPool struct {
	size        int
	contexts    chan *BrowserContext
	allocCtx    context.Context
	allocCancel context.CancelFunc
	mu          sync.Mutex
	closed      bool
}

// BrowserContext wraps a chromedp context with its cancel function
type BrowserContext struct {
	Ctx    context.Context
	Cancel context.CancelFunc
}

// BrowserPoolOptions configures the browser pool
type BrowserPoolOptions struct {
	Size       int
	Headless   bool
	UserAgent  string
	Proxy      string
	ChromePath string
	ExtraArgs  []chromedp.ExecAllocatorOption
}

// NewBrowserPool launches Chrome and pre-creates opts.Size tabs. Any failure
// here means the browser backend is unusable and is reported as
// engine.ErrBrowserStart.
func NewBrowserPool(opts BrowserPoolOptions) (*BrowserPool, error) {
	if opts.Size <= 0 {
		opts.Size = 3
	}
	if opts.Size > config.DefaultMaxBrowserPoolSize {
		opts.Size = config.DefaultMaxBrowserPoolSize
	}
	if opts.UserAgent == "" {
		opts.UserAgent = config.DefaultUserAgent
	}

	log.Debug().Int("size", opts.Size).Msg("Creating browser pool")

	chromePath := opts.ChromePath
	if chromePath == "" {
		chromePath = FindChrome()
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-prompt-on-repost", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("log-level", "3"),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.UserAgent(opts.UserAgent),
	}

	if chromePath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(chromePath)}, allocOpts...)
	}

	if opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	if opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.Proxy))
	}

	allocOpts = append(allocOpts, opts.ExtraArgs...)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)

	pool := &BrowserPool{
		size:        opts.Size,
		contexts:    make(chan *BrowserContext, opts.Size),
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}

	for i := 0; i < opts.Size; i++ {
		browserCtx, browserCancel := chromedp.NewContext(allocCtx)

		// the first Run starts the browser process
		if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
			browserCancel()
			pool.Close()
			cause := engine.ErrBrowserStart
			if chromePath == "" {
				cause = engine.ErrBrowserNotFound
			}
			return nil, engine.NewEngineError(engine.ErrCodeBrowserStart,
				fmt.Sprintf("failed to warm up browser context %d", i), errors.Join(cause, err)).
				WithDetail("chrome_path", chromePath)
		}

		pool.contexts <- &BrowserContext{
			Ctx:    browserCtx,
			Cancel: browserCancel,
		}

		log.Debug().Int("context_id", i).Msg("Browser context initialized")
	}

	log.Info().Int("pool_size", opts.Size).Str("chrome", chromePath).Msg("Browser pool ready")

	return pool, nil
}

// Acquire takes a browser context from the pool, blocking until one is free
// or ctx is done.
func (bp *BrowserPool) Acquire(ctx context.Context) (*BrowserContext, error) {
	select {
	case bctx, ok := <-bp.contexts:
		if !ok {
			return nil, fmt.Errorf("browser pool is closed")
		}
		bp.mu.Lock()
		defer bp.mu.Unlock()
		if bp.closed {
			bctx.Cancel()
			return nil, fmt.Errorf("browser pool is closed")
		}
		return bctx, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for browser context: %w", ctx.Err())
	}
}

// Release returns a browser context to the pool
func (bp *BrowserPool) Release(bctx *BrowserContext) {
	// best effort: drop the previous page's DOM before reuse
	_ = chromedp.Run(bctx.Ctx, chromedp.Navigate("about:blank"))

	bp.mu.Lock()
	defer bp.mu.Unlock()
	if bp.closed {
		bctx.Cancel()
		return
	}

	select {
	case bp.contexts <- bctx:
	default:
		bctx.Cancel()
		log.Warn().Msg("Browser pool full, discarding context")
	}
}

// Close shuts down all browser contexts and the allocator
func (bp *BrowserPool) Close() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return nil
	}
	bp.closed = true

	close(bp.contexts)
	for bctx := range bp.contexts {
		bctx.Cancel()
	}
	bp.allocCancel()

	log.Debug().Msg("Browser pool closed")
	return nil
}

// Size returns the pool size
func (bp *BrowserPool) Size() int {
	return bp.size
}

// Available returns the number of idle contexts in the pool
func (bp *BrowserPool) Available() int {
	return len(bp.contexts)
}
