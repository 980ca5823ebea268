package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	RegisterFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	return cmd
}

func TestDefaultIsValid(t *testing.T) {
	if err := validate(Default()); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	if Default().Mode != "auto" {
		t.Errorf("default mode = %q, want auto", Default().Mode)
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(c *Config){
		"zero timeout":     func(c *Config) { c.HTTPTimeout = 0 },
		"zero concurrency": func(c *Config) { c.Concurrency = 0 },
		"huge concurrency": func(c *Config) { c.Concurrency = DefaultMaxConcurrency + 1 },
		"zero max links":   func(c *Config) { c.MaxLinks = 0 },
		"bad mode":         func(c *Config) { c.Mode = "teleport" },
		"bad format":       func(c *Config) { c.OutputFormat = "pdf" },
		"bad header":       func(c *Config) { c.Headers = []string{"NoColon"} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(c)
			if err := validate(c); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestLoadFile_Applies(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
timeout: 5s
concurrency: 4
mode: static
headers:
  - "Cookie: a=b"
state_dir: /tmp/curate
output_format: markdown
auto_replay: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	cfg := Default()
	if err := f.apply(cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("timeout = %v", cfg.HTTPTimeout)
	}
	if cfg.Concurrency != 4 {
		t.Errorf("concurrency = %d", cfg.Concurrency)
	}
	if cfg.Mode != "static" {
		t.Errorf("mode = %q", cfg.Mode)
	}
	if len(cfg.Headers) != 1 || cfg.Headers[0] != "Cookie: a=b" {
		t.Errorf("headers = %v", cfg.Headers)
	}
	if cfg.OutputFormat != "markdown" || cfg.AutoReplay {
		t.Errorf("format/auto_replay not applied: %q %v", cfg.OutputFormat, cfg.AutoReplay)
	}
	if cfg.SelectionPath() != filepath.Join("/tmp/curate", DefaultSelectionFile) {
		t.Errorf("selection path = %q", cfg.SelectionPath())
	}
	// untouched keys keep defaults
	if cfg.MaxLinks != DefaultMaxLinks {
		t.Errorf("max links = %d", cfg.MaxLinks)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.yaml")
	if err := os.WriteFile(path, []byte("concurrency: 3\nmode: static\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newTestCommand(t, "--config", path, "--concurrency", "7", "--timeout", "2s", "-v", "--no-auto-replay")
	cfg, err := Load(cmd)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Concurrency != 7 {
		t.Errorf("concurrency = %d, want 7", cfg.Concurrency)
	}
	if cfg.Mode != "static" {
		t.Errorf("mode = %q, want static from file", cfg.Mode)
	}
	if cfg.HTTPTimeout != 2*time.Second {
		t.Errorf("timeout = %v", cfg.HTTPTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
	if cfg.AutoReplay {
		t.Error("expected auto replay disabled")
	}
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	cmd := newTestCommand(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(cmd); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestBrowserPoolSize(t *testing.T) {
	c := Default()
	c.Concurrency = 25
	if got := c.BrowserPoolSize(); got != DefaultMaxBrowserPoolSize {
		t.Errorf("BrowserPoolSize() = %d", got)
	}
	c.Concurrency = 4
	if got := c.BrowserPoolSize(); got != 4 {
		t.Errorf("BrowserPoolSize() = %d", got)
	}
}
