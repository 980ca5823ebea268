// Package curate implements the interactive level-by-level curation loop:
// building each level's working set, applying operator selections, replaying
// saved selections, and advancing to the next level.
package curate

import (
	"github.com/law-makers/curate/pkg/models"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Run owns the state that lives for a whole curation run: links preserved at
// any level, whether saved selections have been applied, and which URLs the
// operator has already been shown. It is used from a single goroutine.
type Run struct {
	preserved *orderedmap.OrderedMap[string, models.Link]
	shown     map[string]struct{}

	// Applied is set once the saved selections have been applied with the
	// apply command, and stays set for the rest of the run.
	Applied bool
}

// NewRun creates empty run state.
func NewRun() *Run {
	return &Run{
		preserved: orderedmap.New[string, models.Link](),
		shown:     make(map[string]struct{}),
	}
}

// Preserve registers l. It reports false if the URL was already preserved.
func (r *Run) Preserve(l models.Link) bool {
	if _, ok := r.preserved.Get(l.URL); ok {
		return false
	}
	r.preserved.Set(l.URL, l)
	return true
}

// IsPreserved reports whether url has been preserved at any level.
func (r *Run) IsPreserved(url string) bool {
	_, ok := r.preserved.Get(url)
	return ok
}

// PreservedLinks returns preserved links in the order they were preserved.
func (r *Run) PreservedLinks() []models.Link {
	out := make([]models.Link, 0, r.preserved.Len())
	for pair := r.preserved.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// PreservedCount returns the size of the preserved registry.
func (r *Run) PreservedCount() int {
	return r.preserved.Len()
}

// markShown records url as displayed and reports whether it was new.
func (r *Run) markShown(url string) bool {
	if _, ok := r.shown[url]; ok {
		return false
	}
	r.shown[url] = struct{}{}
	return true
}
