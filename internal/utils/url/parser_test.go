package urlutil

import "testing"

func TestValidate(t *testing.T) {
	valid := []string{
		"http://example.com",
		"https://example.com/path",
	}
	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Fatalf("expected valid, got error: %v", err)
		}
	}

	invalid := []string{"ftp://example.com", "//example.com", "http:///", "not a url"}
	for _, u := range invalid {
		if err := ValidateURL(u); err == nil {
			t.Fatalf("expected invalid for %s", u)
		}
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		base, href string
		want       string
		ok         bool
	}{
		{"https://example.com/docs/a", "b", "https://example.com/docs/b", true},
		{"https://example.com/docs/a", "/root", "https://example.com/root", true},
		{"https://example.com/docs/a", "../up", "https://example.com/up", true},
		{"https://example.com/docs/a", "https://other.org/x", "https://other.org/x", true},
		{"https://example.com/docs/a", "//cdn.example.com/y", "https://cdn.example.com/y", true},
		{"https://example.com/docs/a", "#frag", "https://example.com/docs/a#frag", true},
		{"https://example.com/docs/a", "  c  ", "https://example.com/docs/c", true},
		{"https://example.com/", "mailto:me@example.com", "mailto:me@example.com", true},
		{"https://example.com/", "", "", false},
		{"https://example.com/", "http://[::1", "", false},
		{"relative/base", "x", "", false},
		{"://bad", "x", "", false},
	}

	for _, c := range cases {
		got, ok := Resolve(c.base, c.href)
		if ok != c.ok {
			t.Errorf("Resolve(%q, %q) ok = %v, want %v", c.base, c.href, ok, c.ok)
			continue
		}
		if got != c.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", c.base, c.href, got, c.want)
		}
	}
}

func TestHost(t *testing.T) {
	if h := Host("https://paper.dropbox.com/doc/x"); h != "paper.dropbox.com" {
		t.Errorf("Host() = %q", h)
	}
	if h := Host("://bad"); h != "" {
		t.Errorf("Host() on bad URL = %q, want empty", h)
	}
}
