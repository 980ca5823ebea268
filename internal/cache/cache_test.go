package cache

import (
	"testing"

	"github.com/law-makers/curate/pkg/models"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()

	if _, ok := c.Get("https://a.example"); ok {
		t.Fatal("Expected miss on empty cache")
	}

	page := &models.PageData{URL: "https://a.example", Content: "A"}
	if !c.Set(page.URL, page) {
		t.Fatal("Expected first Set to store the page")
	}

	got, ok := c.Get("https://a.example")
	if !ok || got != page {
		t.Fatalf("Expected cached page, got %v %v", got, ok)
	}
}

func TestMemoryCache_FirstSetWins(t *testing.T) {
	c := NewMemoryCache()
	first := &models.PageData{URL: "u", Content: "first"}
	second := &models.PageData{URL: "u", Content: "second"}

	c.Set("u", first)
	if c.Set("u", second) {
		t.Error("Expected second Set to be ignored")
	}

	got, _ := c.Get("u")
	if got.Content != "first" {
		t.Errorf("Expected first page to be kept, got %q", got.Content)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", c.Len())
	}
}

func TestMemoryCache_PagesInInsertionOrder(t *testing.T) {
	c := NewMemoryCache()
	for _, u := range []string{"z", "a", "m"} {
		c.Set(u, &models.PageData{URL: u})
	}

	pages := c.Pages()
	want := []string{"z", "a", "m"}
	if len(pages) != len(want) {
		t.Fatalf("Expected %d pages, got %d", len(want), len(pages))
	}
	for i, p := range pages {
		if p.URL != want[i] {
			t.Errorf("pages[%d] = %q, want %q", i, p.URL, want[i])
		}
	}
}

func TestMemoryCache_NilPageIgnored(t *testing.T) {
	c := NewMemoryCache()
	if c.Set("u", nil) {
		t.Error("Expected nil page to be rejected")
	}
	if c.Len() != 0 {
		t.Errorf("Expected empty cache, got %d", c.Len())
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	c := NewMemoryCache()
	c.Set("u", &models.PageData{URL: "u"})
	c.Get("u")
	c.Get("missing")

	stats := c.Stats()
	if stats["hits"].(uint64) != 1 || stats["misses"].(uint64) != 1 {
		t.Errorf("Unexpected stats: %v", stats)
	}
	if stats["entries"].(int) != 1 {
		t.Errorf("Expected 1 entry, got %v", stats["entries"])
	}
	if stats["hit_rate"].(float64) != 50 {
		t.Errorf("Expected 50%% hit rate, got %v", stats["hit_rate"])
	}
}
