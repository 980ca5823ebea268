package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL checks that a seed address is an absolute http(s) URL
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: must be http or https, got %s", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}

	return nil
}

// Resolve resolves href against base and reports whether the result is a
// usable absolute URL. Malformed input of any kind yields ok == false; callers
// drop such links silently.
func Resolve(base, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}

	baseURL, err := url.Parse(strings.TrimSpace(base))
	if err != nil || !baseURL.IsAbs() {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	resolved := baseURL.ResolveReference(ref)
	if resolved.Scheme == "" {
		return "", false
	}
	// hierarchical schemes must carry a host
	if (resolved.Scheme == "http" || resolved.Scheme == "https") && resolved.Host == "" {
		return "", false
	}

	return resolved.String(), true
}

// Host returns the host part of a URL, or "" if it cannot be parsed
func Host(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Host
}
