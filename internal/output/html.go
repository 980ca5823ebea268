package output

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// stripped elements never carry readable page content.
const stripped = "script, style, link, meta, noscript, iframe, svg, form, input, button, select, textarea, canvas"

// keptAttrs lists the attributes that survive cleaning, per element.
var keptAttrs = map[string][]string{
	"a":   {"href", "title"},
	"img": {"src", "alt", "title"},
}

// CleanHTML strips non-content elements and all attributes except links and
// image sources, leaving markup the markdown converter can handle.
func CleanHTML(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	doc.Find(stripped).Remove()

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, node := range s.Nodes {
			node.Attr = filterAttrs(node.Data, node.Attr)
		}
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func filterAttrs(tag string, attrs []html.Attribute) []html.Attribute {
	keep := keptAttrs[tag]
	if len(keep) == 0 {
		return nil
	}
	var out []html.Attribute
	for _, a := range attrs {
		for _, k := range keep {
			if a.Key == k {
				out = append(out, a)
				break
			}
		}
	}
	return out
}
