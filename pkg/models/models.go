package models

import "time"

// Anchor is a raw (href, anchor text) pair as found in a page, before resolution
type Anchor struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// Link is a resolved outbound link. Its identity is URL.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// PageData represents what a fetcher extracted from one page
type PageData struct {
	URL          string    `json:"url"`
	StatusCode   int       `json:"status_code,omitempty"`
	Title        string    `json:"title,omitempty"`
	Content      string    `json:"content,omitempty"`
	HTML         string    `json:"html,omitempty"`
	Anchors      []Anchor  `json:"anchors,omitempty"`
	Fetcher      string    `json:"fetcher,omitempty"`
	FetchedAt    time.Time `json:"fetched_at"`
	ResponseTime int64     `json:"response_time_ms"`
}

// FetchMode defines which page fetcher backend to use
type FetchMode string

const (
	ModeAuto    FetchMode = "auto"
	ModeStatic  FetchMode = "static"
	ModeBrowser FetchMode = "browser"
)

// RequestOptions contains options for fetching a single page
type RequestOptions struct {
	URL      string
	Selector string
	Headers  map[string]string
	Timeout  time.Duration
	Proxy    string
}
