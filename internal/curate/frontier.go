package curate

import (
	"slices"
	"strings"

	"github.com/law-makers/curate/internal/engine/batch"
	urlutil "github.com/law-makers/curate/internal/utils/url"
	"github.com/law-makers/curate/pkg/models"
)

// BuildFrontier turns a level's fetch results into its working set. Each href
// is resolved against the page it came from; unresolvable hrefs and anchors
// without text are dropped, the first anchor text for a URL wins, at most
// maxLinks distinct links are kept, and the result is sorted by URL.
func BuildFrontier(results []batch.Result, maxLinks int) []models.Link {
	seen := make(map[string]struct{})
	var links []models.Link

collect:
	for _, r := range results {
		for _, a := range r.Anchors() {
			text := strings.TrimSpace(a.Text)
			if text == "" {
				continue
			}
			u, ok := urlutil.Resolve(r.URL, a.Href)
			if !ok {
				continue
			}
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			links = append(links, models.Link{URL: u, Text: text})
			if maxLinks > 0 && len(links) >= maxLinks {
				break collect
			}
		}
	}

	slices.SortFunc(links, func(a, b models.Link) int {
		return strings.Compare(a.URL, b.URL)
	})
	return links
}
