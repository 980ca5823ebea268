// internal/engine/hybrid/detector.go
package hybrid

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	urlutil "github.com/law-makers/curate/internal/utils/url"
	"github.com/law-makers/curate/pkg/models"
)

// scriptHosts are sites whose content is always built client-side.
var scriptHosts = []string{
	"paper.dropbox.com",
	"scrapbox.io",
}

// spaRoots are mount points left empty in the served HTML of single-page apps.
var spaRoots = []string{"#root", "#app", "#__next", "#__nuxt", "[ng-app]", "[data-reactroot]"}

// DetectJavaScriptFramework names the client framework a document loads, or
// "Unknown".
func DetectJavaScriptFramework(doc *goquery.Document) string {
	framework := "Unknown"
	doc.Find("script[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src := strings.ToLower(s.AttrOr("src", ""))
		switch {
		case strings.Contains(src, "react"):
			framework = "React"
		case strings.Contains(src, "vue"):
			framework = "Vue"
		case strings.Contains(src, "angular"):
			framework = "Angular"
		case strings.Contains(src, "svelte"):
			framework = "Svelte"
		case strings.Contains(src, "_next/"):
			framework = "Next.js"
		default:
			return true
		}
		return false
	})
	if framework == "Unknown" && doc.Find("[ng-app], [ng-version]").Length() > 0 {
		framework = "Angular"
	}
	return framework
}

// NeedsJavaScript reports whether a statically fetched page probably hides
// its links or text behind client-side rendering.
func NeedsJavaScript(doc *goquery.Document, page *models.PageData) bool {
	host := urlutil.Host(page.URL)
	for _, h := range scriptHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}

	scripts := doc.Find("script").Length()
	if scripts == 0 {
		return false
	}

	text := len(strings.TrimSpace(page.Content))

	for _, sel := range spaRoots {
		root := doc.Find(sel).First()
		if root.Length() > 0 && len(strings.TrimSpace(root.Text())) == 0 {
			return true
		}
	}

	noscript := strings.ToLower(doc.Find("noscript").Text())
	if strings.Contains(noscript, "enable javascript") && text < 500 {
		return true
	}

	if len(page.Anchors) == 0 && text < 200 {
		return true
	}

	return DetectJavaScriptFramework(doc) != "Unknown" && len(page.Anchors) < 3
}
