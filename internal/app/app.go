// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/law-makers/curate/internal/cache"
	"github.com/law-makers/curate/internal/config"
	"github.com/law-makers/curate/internal/engine"
	"github.com/law-makers/curate/internal/engine/batch"
	"github.com/law-makers/curate/internal/engine/dynamic"
	"github.com/law-makers/curate/internal/engine/hybrid"
	"github.com/law-makers/curate/internal/engine/static"
	"github.com/law-makers/curate/internal/utils/headers"
	"github.com/law-makers/curate/pkg/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once per command invocation. Use Close() to release the
// browser and idle connections on shutdown.
type Application struct {
	Config         *config.Config
	Logger         *zerolog.Logger
	Cache          *cache.MemoryCache
	HTTPClient     *http.Client
	StaticScraper  *static.Scraper
	DynamicScraper *dynamic.Scraper
	Fetcher        engine.Fetcher
	Pool           *batch.Pool
	BrowserPool    *dynamic.BrowserPool
	poolMu         sync.Mutex
	browserErr     error
	browserWarn    sync.Once
	startTime      time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates the run-wide fetch cache
//   - Initializes the HTTP client with proper timeouts and proxy
//   - Creates the fetcher for the configured mode
//   - Wraps the fetcher in the bounded fetch pool
//
// In browser mode the browser is started here, and a failure to start it is
// returned as a fatal error. In auto mode it is started on first need.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := SetupLogger(cfg)

	memCache := cache.NewMemoryCache()

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", cfg.Proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}
	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: transport,
	}
	logger.Debug().
		Dur("timeout", cfg.HTTPTimeout).
		Str("proxy", cfg.Proxy).
		Msg("HTTP client initialized")

	extra, err := headers.Parse(cfg.Headers)
	if err != nil {
		return nil, fmt.Errorf("invalid header: %w", err)
	}

	app := &Application{
		Config:         cfg,
		Logger:         &logger,
		Cache:          memCache,
		HTTPClient:     httpClient,
		StaticScraper:  static.New(httpClient, cfg.HTTPTimeout, cfg.UserAgent, extra),
		DynamicScraper: dynamic.New(nil, cfg.HTTPTimeout, cfg.JSWait),
		startTime:      time.Now(),
	}

	switch models.FetchMode(cfg.Mode) {
	case models.ModeStatic:
		app.Fetcher = app.StaticScraper
	case models.ModeBrowser:
		if err := app.EnsureBrowserPool(ctx); err != nil {
			return nil, err
		}
		app.Fetcher = app.DynamicScraper
	default:
		app.Fetcher = hybrid.New(app.StaticScraper, app.browserFetcher)
	}

	var progress io.Writer
	if cfg.Progress {
		progress = os.Stderr
	}
	app.Pool = batch.New(app.Fetcher, memCache, cfg.Concurrency,
		batch.WithTimeout(cfg.HTTPTimeout),
		batch.WithProgress(progress),
	)

	logger.Debug().
		Str("mode", cfg.Mode).
		Str("fetcher", app.Fetcher.Name()).
		Int("concurrency", cfg.Concurrency).
		Msg("Application initialized")
	return app, nil
}

// SetupLogger configures the global zerolog logger from cfg and returns it.
func SetupLogger(cfg *config.Config) zerolog.Logger {
	// info stays quiet unless -v is used
	level := zerolog.ErrorLevel
	switch cfg.LogLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	if cfg.JSONLog {
		w = os.Stderr
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return log.Logger
}

// EnsureBrowserPool starts the browser pool if it is not running yet. A
// failed start is remembered and returned again without relaunching Chrome.
func (a *Application) EnsureBrowserPool(ctx context.Context) error {
	a.poolMu.Lock()
	defer a.poolMu.Unlock()

	if a.BrowserPool != nil {
		return nil
	}
	if a.browserErr != nil {
		return a.browserErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	a.Logger.Debug().Msg("Initializing browser pool")
	pool, err := dynamic.NewBrowserPool(dynamic.BrowserPoolOptions{
		Size:       a.Config.BrowserPoolSize(),
		Headless:   a.Config.BrowserHeadless,
		UserAgent:  a.Config.UserAgent,
		Proxy:      a.Config.Proxy,
		ChromePath: a.Config.ChromePath,
	})
	if err != nil {
		a.browserErr = err
		return err
	}

	a.BrowserPool = pool
	a.DynamicScraper.SetBrowserPool(pool)
	a.Logger.Debug().Int("pool_size", pool.Size()).Msg("Browser pool initialized")
	return nil
}

// browserFetcher hands the hybrid fetcher a ready browser, starting it on
// first use. Only the first failure is reported.
func (a *Application) browserFetcher() (engine.Fetcher, error) {
	if err := a.EnsureBrowserPool(context.Background()); err != nil {
		a.browserWarn.Do(func() {
			a.Logger.Error().Err(err).Msg("Browser unavailable, continuing with static fetches")
		})
		return nil, err
	}
	return a.DynamicScraper, nil
}

// Close shuts down the browser pool and idle HTTP connections.
func (a *Application) Close(ctx context.Context) error {
	a.poolMu.Lock()
	pool := a.BrowserPool
	a.BrowserPool = nil
	a.poolMu.Unlock()

	if pool != nil {
		if busy := pool.Size() - pool.Available(); busy > 0 {
			a.Logger.Warn().Int("busy", busy).Msg("Closing browser pool with pages still rendering")
		}
		if err := pool.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Error closing browser pool")
		}
	}
	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	a.Logger.Debug().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
	return nil
}
