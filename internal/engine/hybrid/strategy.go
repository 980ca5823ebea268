// internal/engine/hybrid/strategy.go
package hybrid

import (
	"context"

	"github.com/law-makers/curate/internal/engine"
	"github.com/law-makers/curate/internal/engine/static"
	"github.com/law-makers/curate/pkg/models"
	"github.com/rs/zerolog/log"
)

// Strategy represents the fetch path chosen for a page
type Strategy int

const (
	// StrategyStatic keeps the plain HTTP result
	StrategyStatic Strategy = iota

	// StrategyDynamic re-fetches the page in a browser
	StrategyDynamic
)

// String returns the string representation of the strategy
func (s Strategy) String() string {
	switch s {
	case StrategyStatic:
		return "Static"
	case StrategyDynamic:
		return "Dynamic"
	default:
		return "Unknown"
	}
}

// BrowserFunc returns the browser fetcher, starting it on first use.
type BrowserFunc func() (engine.Fetcher, error)

// Fetcher tries a plain HTTP fetch first and escalates to the browser only
// for pages that look script-rendered. When the browser is unavailable the
// static result is kept.
type Fetcher struct {
	static  *static.Scraper
	browser BrowserFunc
}

// New creates an auto-mode fetcher. browser may be nil, which pins every
// page to the static path.
func New(s *static.Scraper, browser BrowserFunc) *Fetcher {
	return &Fetcher{static: s, browser: browser}
}

// Name returns the name of this fetcher
func (f *Fetcher) Name() string {
	return "HybridScraper"
}

// Fetch implements engine.Fetcher
func (f *Fetcher) Fetch(ctx context.Context, opts models.RequestOptions) (*models.PageData, error) {
	page, doc, err := f.static.FetchWithDoc(ctx, opts)
	if err != nil {
		return nil, err
	}

	strategy := StrategyStatic
	if f.browser != nil && NeedsJavaScript(doc, page) {
		strategy = StrategyDynamic
	}
	log.Debug().Str("url", opts.URL).Stringer("strategy", strategy).Msg("Fetch strategy selected")

	if strategy == StrategyStatic {
		return page, nil
	}

	browser, err := f.browser()
	if err != nil {
		log.Debug().Err(err).Str("url", opts.URL).Msg("Browser unavailable, keeping static result")
		return page, nil
	}

	rendered, err := browser.Fetch(ctx, opts)
	if err != nil {
		log.Warn().Err(err).Str("url", opts.URL).Msg("Browser fetch failed, keeping static result")
		return page, nil
	}
	return rendered, nil
}
