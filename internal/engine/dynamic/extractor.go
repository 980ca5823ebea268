// internal/engine/dynamic/extractor.go
package dynamic

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/law-makers/curate/internal/engine/metadata"
	"github.com/law-makers/curate/pkg/models"
	"github.com/rs/zerolog/log"
)

// extractRendered fills page from the rendered DOM. Anchors and title come
// from the serialized document so the browser and static paths share one
// extraction rule; the text is the browser's own rendering of the content
// element.
func extractRendered(ctx context.Context, selector, rendered string, page *models.PageData) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	if err != nil {
		return err
	}
	content := metadata.Extract(doc, selector, page)

	var text string
	script := fmt.Sprintf(`(() => { const el = document.querySelector(%q); return el ? el.innerText : ""; })()`, selector)
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &text)); err != nil {
		log.Debug().Err(err).Str("selector", selector).Msg("Rendered text unavailable, using DOM text")
		text = metadata.Text(content)
	}
	page.Content = strings.TrimSpace(text)
	return nil
}
