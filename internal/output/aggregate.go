// Package output writes the run's final artifact: the text of every fetched
// page, in the order pages were first fetched.
package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/law-makers/curate/pkg/models"
	"github.com/rs/zerolog/log"
)

// Supported artifact formats.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// Aggregate concatenates the pages, each followed by a blank line. In
// markdown format the page HTML is converted; a page whose HTML cannot be
// converted falls back to its plain text.
func Aggregate(pages []*models.PageData, format string) []byte {
	var buf bytes.Buffer
	for _, p := range pages {
		body := p.Content
		if format == FormatMarkdown && p.HTML != "" {
			converted, err := ToMarkdown(p)
			if err != nil {
				log.Warn().Err(err).Str("url", p.URL).Msg("Markdown conversion failed, using text")
			} else {
				body = converted
			}
		}
		buf.WriteString(body)
		buf.WriteString("\n\n")
	}
	return buf.Bytes()
}

// Write aggregates pages into path.
func Write(path string, pages []*models.PageData, format string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, Aggregate(pages, format), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("pages", len(pages)).Str("format", format).Msg("Output written")
	return nil
}
