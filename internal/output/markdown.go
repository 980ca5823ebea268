package output

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	urlutil "github.com/law-makers/curate/internal/utils/url"
	"github.com/law-makers/curate/pkg/models"
)

// ToMarkdown renders the content element of page as GitHub-flavored
// markdown, with relative links made absolute against the page URL.
func ToMarkdown(page *models.PageData) (string, error) {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	converter.AddRules(md.Rule{
		Filter: []string{"a"},
		Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
			href, exists := selec.Attr("href")
			if !exists {
				return nil
			}
			resolved, ok := urlutil.Resolve(page.URL, href)
			if !ok {
				resolved = href
			}
			text := strings.TrimSpace(content)
			if text == "" {
				text = resolved
			}
			var titlePart string
			if title, ok := selec.Attr("title"); ok {
				titlePart = fmt.Sprintf(" %q", title)
			}
			str := fmt.Sprintf("[%s](%s%s)", text, resolved, titlePart)
			return &str
		},
	})

	cleaned, err := CleanHTML(page.HTML)
	if err != nil {
		return "", err
	}
	return converter.ConvertString(cleaned)
}
