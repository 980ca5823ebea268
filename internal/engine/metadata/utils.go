package metadata

import (
	"strings"

	urlutil "github.com/law-makers/curate/internal/utils/url"
)

// siteSelectors maps hosts whose readable content lives in a specific element
// to that element's selector. Everything else uses body.
var siteSelectors = []struct {
	domain   string
	selector string
}{
	{"paper.dropbox.com", "#editor-1"},
	{"scrapbox.io", "#editor"},
}

// DefaultSelector is the content element used when no site rule matches
const DefaultSelector = "body"

// SelectorFor returns the content selector for the page at pageURL
func SelectorFor(pageURL string) string {
	host := strings.ToLower(urlutil.Host(pageURL))
	for _, s := range siteSelectors {
		if matchesDomain(host, s.domain) {
			return s.selector
		}
	}
	return DefaultSelector
}

// matchesDomain reports whether host is domain or one of its subdomains
func matchesDomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
