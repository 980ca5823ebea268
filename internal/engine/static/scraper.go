// internal/engine/static/scraper.go
package static

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jaytaylor/html2text"
	"github.com/law-makers/curate/internal/engine"
	"github.com/law-makers/curate/internal/engine/metadata"
	"github.com/law-makers/curate/internal/utils/headers"
	"github.com/law-makers/curate/pkg/models"
	"github.com/rs/zerolog/log"
)

// Scraper implements engine.Fetcher for static HTML pages.
// It uses raw HTTP requests and goquery for parsing, no JavaScript.
type Scraper struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	headers   http.Header
}

// New creates a new static Scraper
func New(client *http.Client, timeout time.Duration, ua string, extra http.Header) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Scraper{
		client:    client,
		timeout:   timeout,
		userAgent: ua,
		headers:   extra,
	}
}

// Name returns the name of this scraper
func (s *Scraper) Name() string {
	return "StaticScraper"
}

// FetchWithDoc retrieves a page and also returns the parsed document, which the
// hybrid fetcher inspects to decide whether the page needs a browser.
func (s *Scraper) FetchWithDoc(ctx context.Context, opts models.RequestOptions) (*models.PageData, *goquery.Document, error) {
	return s.fetch(ctx, opts)
}

// Fetch retrieves and extracts a static HTML page
func (s *Scraper) Fetch(ctx context.Context, opts models.RequestOptions) (*models.PageData, error) {
	data, _, err := s.fetch(ctx, opts)
	return data, err
}

func (s *Scraper) fetch(ctx context.Context, opts models.RequestOptions) (*models.PageData, *goquery.Document, error) {
	start := time.Now()

	log.Debug().
		Str("url", opts.URL).
		Str("fetcher", s.Name()).
		Msg("Starting fetch")

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = s.timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return nil, nil, engine.NewEngineError(engine.ErrCodeValidation, "failed to create request", errors.Join(engine.ErrInvalidURL, err)).ForURL(opts.URL)
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	headers.Apply(req, s.headers)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, nil, engine.NewEngineError(engine.ErrCodeTimeout, "request timed out", errors.Join(engine.ErrTimeout, err)).ForURL(opts.URL)
		}
		return nil, nil, engine.NewEngineError(engine.ErrCodeNetworkError, "failed to fetch URL", errors.Join(engine.ErrNetworkError, err)).ForURL(opts.URL)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, nil, engine.NewEngineError(engine.ErrCodeParseError, "failed to parse HTML", errors.Join(engine.ErrParseError, err)).ForURL(opts.URL)
	}

	pageData := &models.PageData{
		URL:        opts.URL,
		StatusCode: resp.StatusCode,
		Fetcher:    s.Name(),
		FetchedAt:  time.Now(),
	}

	selector := opts.Selector
	if selector == "" {
		selector = metadata.SelectorFor(opts.URL)
	}

	content := metadata.Extract(doc, selector, pageData)
	if content.Length() == 0 {
		log.Warn().
			Str("url", opts.URL).
			Str("selector", selector).
			Msg("Selector not found in document")
	} else {
		pageData.Content = plainText(pageData.HTML, content)
	}

	pageData.ResponseTime = time.Since(start).Milliseconds()

	log.Debug().
		Str("url", opts.URL).
		Int("status", resp.StatusCode).
		Int64("response_time_ms", pageData.ResponseTime).
		Int("links", len(pageData.Anchors)).
		Msg("Fetch completed")

	return pageData, doc, nil
}

// plainText renders the content element as readable text, keeping block
// structure. It falls back to raw text content if conversion fails.
func plainText(html string, content *goquery.Selection) string {
	text, err := html2text.FromString(html, html2text.Options{OmitLinks: true})
	if err != nil {
		log.Debug().Err(err).Msg("html2text failed, using raw text")
		return metadata.Text(content)
	}
	return text
}
