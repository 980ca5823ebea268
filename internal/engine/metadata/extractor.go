package metadata

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/curate/pkg/models"
)

// chromeSelectors hold navigation links that are not part of the content
const chromeSelectors = "#header a[href], #footer a[href]"

// Extract fills pageData with the title, the content element's HTML, and the
// anchors found inside the content element. Header and footer links are
// removed from doc first. It returns the content selection so callers can
// derive page text from it; the selection is empty when selector matches nothing.
func Extract(doc *goquery.Document, selector string, pageData *models.PageData) *goquery.Selection {
	if doc == nil || pageData == nil {
		return nil
	}
	if selector == "" {
		selector = DefaultSelector
	}

	pageData.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find(chromeSelectors).Remove()

	content := doc.Find(selector).First()
	if content.Length() == 0 {
		return content
	}

	pageData.HTML, _ = goquery.OuterHtml(content)
	pageData.Anchors = Anchors(content)
	return content
}

// Anchors collects (href, text) pairs for every a[href] under sel. Pairs with
// an empty href or empty trimmed text are dropped.
func Anchors(sel *goquery.Selection) []models.Anchor {
	var anchors []models.Anchor
	sel.Find("a[href]").Each(func(i int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		text := strings.TrimSpace(a.Text())
		if href == "" || text == "" {
			return
		}
		anchors = append(anchors, models.Anchor{Href: href, Text: text})
	})
	return anchors
}

// Text returns the trimmed text content of sel
func Text(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	return strings.TrimSpace(sel.Text())
}
