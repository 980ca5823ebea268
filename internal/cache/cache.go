// internal/cache/cache.go
package cache

import (
	"sync"

	"github.com/law-makers/curate/pkg/models"
	"github.com/rs/zerolog/log"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Cache holds fetched pages for the duration of a run.
//
// Entries never expire and are never evicted. Iteration order is first
// insertion order, which is also the order pages are written to the final
// output.
type Cache interface {
	// Get retrieves a cached page by URL.
	Get(url string) (*models.PageData, bool)

	// Set stores a page. The first Set for a URL wins; later ones are ignored
	// and reported with false.
	Set(url string, page *models.PageData) bool

	// Len returns the number of cached pages.
	Len() int

	// Pages returns all pages in insertion order.
	Pages() []*models.PageData
}

// MemoryCache is the in-memory Cache used by a curation run.
type MemoryCache struct {
	store  *orderedmap.OrderedMap[string, *models.PageData]
	mu     sync.RWMutex
	hits   uint64
	misses uint64
}

// NewMemoryCache creates an empty cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		store: orderedmap.New[string, *models.PageData](),
	}
}

// Get retrieves a cached page
func (mc *MemoryCache) Get(url string) (*models.PageData, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	page, ok := mc.store.Get(url)
	if !ok {
		mc.misses++
		return nil, false
	}
	mc.hits++
	log.Debug().Str("url", url).Msg("Cache hit")
	return page, true
}

// Set stores a page unless the URL is already cached
func (mc *MemoryCache) Set(url string, page *models.PageData) bool {
	if page == nil {
		return false
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, exists := mc.store.Get(url); exists {
		return false
	}
	mc.store.Set(url, page)
	return true
}

// Len returns the number of cached pages
func (mc *MemoryCache) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.store.Len()
}

// Pages returns every cached page in insertion order
func (mc *MemoryCache) Pages() []*models.PageData {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	pages := make([]*models.PageData, 0, mc.store.Len())
	for pair := mc.store.Oldest(); pair != nil; pair = pair.Next() {
		pages = append(pages, pair.Value)
	}
	return pages
}

// Stats returns cache statistics including hit rate
func (mc *MemoryCache) Stats() map[string]interface{} {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	hitRate := 0.0
	total := mc.hits + mc.misses
	if total > 0 {
		hitRate = float64(mc.hits) / float64(total) * 100
	}

	return map[string]interface{}{
		"entries":  mc.store.Len(),
		"hits":     mc.hits,
		"misses":   mc.misses,
		"hit_rate": hitRate,
	}
}
