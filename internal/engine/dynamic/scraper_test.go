package dynamic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/law-makers/curate/internal/engine"
	"github.com/law-makers/curate/pkg/models"
)

func newTestPool(t *testing.T) *BrowserPool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	chrome := FindChrome()
	if chrome == "" {
		t.Skip("Chrome not available")
	}
	pool, err := NewBrowserPool(BrowserPoolOptions{Size: 1, Headless: true, ChromePath: chrome})
	if err != nil {
		t.Skipf("browser could not start: %v", err)
	}
	t.Cleanup(func() { pool.Close() })
	return pool
}

func TestScraper_Fetch_RendersScriptLinks(t *testing.T) {
	pool := newTestPool(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Rendered</title></head><body>
<div id="footer"><a href="/about">About</a></div>
<div id="app"></div>
<script>
  const a = document.createElement('a');
  a.href = '/generated';
  a.textContent = 'Generated';
  document.getElementById('app').appendChild(a);
</script>
</body></html>`))
	}))
	defer server.Close()

	scraper := New(pool, 10*time.Second, 100*time.Millisecond)
	page, err := scraper.Fetch(context.Background(), models.RequestOptions{URL: server.URL})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if page.Title != "Rendered" {
		t.Errorf("Expected title 'Rendered', got %q", page.Title)
	}
	if len(page.Anchors) != 1 || page.Anchors[0].Href != "/generated" {
		t.Errorf("Expected only the generated anchor, got %+v", page.Anchors)
	}
	if !strings.Contains(page.Content, "Generated") {
		t.Errorf("Expected rendered text, got %q", page.Content)
	}
	if page.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", page.StatusCode)
	}
}

func TestScraper_Fetch_NoPool(t *testing.T) {
	scraper := New(nil, time.Second, 0)
	_, err := scraper.Fetch(context.Background(), models.RequestOptions{URL: "http://example.com"})
	if !errors.Is(err, engine.ErrBrowserStart) {
		t.Fatalf("Expected ErrBrowserStart, got %v", err)
	}
}

func TestScraper_Name(t *testing.T) {
	if got := New(nil, 0, 0).Name(); got != "DynamicScraper" {
		t.Errorf("Expected DynamicScraper, got %q", got)
	}
}

func TestBrowserPool_AcquireRespectsContext(t *testing.T) {
	pool := &BrowserPool{size: 1, contexts: make(chan *BrowserContext, 1), allocCancel: func() {}}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := pool.Acquire(ctx); err == nil {
		t.Fatal("Expected acquire on an empty pool to fail when the context expires")
	}
	if got := pool.Size() - pool.Available(); got != 1 {
		t.Errorf("Expected 1 busy context, got %d", got)
	}
	if err := pool.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}
