package engine

import (
	"context"

	"github.com/law-makers/curate/pkg/models"
)

// Fetcher is the page fetcher boundary: given a URL it returns the page's
// (href, anchor text) pairs and its plain text, or fails.
type Fetcher interface {
	// Fetch retrieves and extracts a single page
	Fetch(ctx context.Context, opts models.RequestOptions) (*models.PageData, error)

	// Name returns the name of the fetcher implementation
	Name() string
}
