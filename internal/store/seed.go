// Package store persists run state between invocations: the root URL and
// the append-only log of operator selections.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	urlutil "github.com/law-makers/curate/internal/utils/url"
	"github.com/rs/zerolog/log"
)

// ErrNoRootURL is returned when no root URL is stored and none was entered.
var ErrNoRootURL = errors.New("no root URL provided")

// Prompter asks the operator for a line of input.
type Prompter interface {
	ReadLine(prompt string) (string, error)
	Warn(format string, args ...any)
}

// Seed is the root URL for a run and where it came from.
type Seed struct {
	URL string
	// Loaded is true when the URL was read from the seed file rather than
	// entered at the prompt.
	Loaded bool
}

// LoadOrPromptRootURL reads the root URL from path. If the file does not
// exist the operator is asked for one until a valid http(s) URL is given,
// and it is saved to path for future runs.
func LoadOrPromptRootURL(path string, p Prompter) (Seed, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		u := strings.TrimSpace(string(data))
		if err := urlutil.ValidateURL(u); err != nil {
			return Seed{}, fmt.Errorf("root URL in %s: %w", path, err)
		}
		log.Debug().Str("path", path).Str("url", u).Msg("Root URL loaded")
		return Seed{URL: u, Loaded: true}, nil
	case !errors.Is(err, os.ErrNotExist):
		return Seed{}, fmt.Errorf("reading %s: %w", path, err)
	}

	for {
		line, err := p.ReadLine("Enter the root URL: ")
		if errors.Is(err, io.EOF) {
			return Seed{}, ErrNoRootURL
		}
		if err != nil {
			return Seed{}, err
		}
		u := strings.TrimSpace(line)
		if err := urlutil.ValidateURL(u); err != nil {
			p.Warn("%v", err)
			continue
		}
		if err := SaveRootURL(path, u); err != nil {
			return Seed{}, err
		}
		return Seed{URL: u}, nil
	}
}

// SaveRootURL writes u to path, creating parent directories.
func SaveRootURL(path, u string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(u), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
