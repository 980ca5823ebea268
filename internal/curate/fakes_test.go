package curate

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/law-makers/curate/internal/engine/batch"
	"github.com/law-makers/curate/pkg/models"
)

// siteFetcher serves anchors from a fixed map; unknown URLs fail.
type siteFetcher struct {
	pages   map[string][]models.Anchor
	batches [][]string
}

func (f *siteFetcher) FetchAll(_ context.Context, urls []string) []batch.Result {
	f.batches = append(f.batches, append([]string(nil), urls...))
	out := make([]batch.Result, len(urls))
	for i, u := range urls {
		anchors, ok := f.pages[u]
		if !ok {
			out[i] = batch.Result{URL: u, Err: errors.New("not found")}
			continue
		}
		out[i] = batch.Result{URL: u, Page: &models.PageData{URL: u, Anchors: anchors}}
	}
	return out
}

type shown struct {
	header  string
	entries []Entry
}

// scriptedConsole replays a fixed list of operator inputs, then reports EOF.
type scriptedConsole struct {
	inputs  []string
	prompts int
	shows   []shown
	notices []string
	warns   []string
}

func (c *scriptedConsole) ReadLine(string) (string, error) {
	c.prompts++
	if len(c.inputs) == 0 {
		return "", io.EOF
	}
	in := c.inputs[0]
	c.inputs = c.inputs[1:]
	return in, nil
}

func (c *scriptedConsole) ShowLinks(header string, entries []Entry) {
	c.shows = append(c.shows, shown{header: header, entries: entries})
}

func (c *scriptedConsole) Notice(format string, args ...any) {
	c.notices = append(c.notices, fmt.Sprintf(format, args...))
}

func (c *scriptedConsole) Warn(format string, args ...any) {
	c.warns = append(c.warns, fmt.Sprintf(format, args...))
}

func (c *scriptedConsole) lastShown() shown {
	if len(c.shows) == 0 {
		return shown{}
	}
	return c.shows[len(c.shows)-1]
}

type logEntry struct {
	level   int
	command string
}

type memoryLog struct {
	entries []logEntry
	err     error
}

func (m *memoryLog) Append(level int, command string) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, logEntry{level, command})
	return nil
}

func links(n int) []models.Link {
	out := make([]models.Link, n)
	for i := range out {
		out[i] = models.Link{URL: fmt.Sprintf("https://example.com/%04d", i+1), Text: fmt.Sprintf("Link %d", i+1)}
	}
	return out
}
