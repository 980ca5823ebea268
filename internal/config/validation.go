package config

import (
	"fmt"

	"github.com/law-makers/curate/internal/utils/headers"
	"github.com/law-makers/curate/pkg/models"
)

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("timeout must be > 0")
	}
	if c.Concurrency <= 0 || c.Concurrency > DefaultMaxConcurrency {
		return fmt.Errorf("concurrency must be between 1 and %d", DefaultMaxConcurrency)
	}
	if c.MaxLinks <= 0 {
		return fmt.Errorf("max links must be > 0")
	}
	switch models.FetchMode(c.Mode) {
	case models.ModeAuto, models.ModeStatic, models.ModeBrowser:
	default:
		return fmt.Errorf("unknown mode %q (must be auto, static, or browser)", c.Mode)
	}
	switch c.OutputFormat {
	case "text", "markdown":
	default:
		return fmt.Errorf("unknown output format %q (must be text or markdown)", c.OutputFormat)
	}
	if _, err := headers.Parse(c.Headers); err != nil {
		return err
	}
	return nil
}
