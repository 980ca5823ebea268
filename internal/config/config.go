package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Fetching
	HTTPTimeout time.Duration
	UserAgent   string
	Proxy       string
	Headers     []string
	Mode        string
	Concurrency int
	MaxLinks    int

	// Browser
	BrowserHeadless bool
	ChromePath      string
	JSWait          time.Duration

	// Persistence
	StateDir      string
	RootURLFile   string
	SelectionFile string
	OutputFile    string
	OutputFormat  string

	// Behavior
	AutoReplay bool
	Progress   bool
}

// Default returns a Config populated with the package defaults
func Default() *Config {
	return &Config{
		LogLevel:        DefaultLogLevel,
		JSONLog:         DefaultJSONLog,
		HTTPTimeout:     DefaultHTTPTimeout,
		UserAgent:       DefaultUserAgent,
		Mode:            DefaultMode,
		Concurrency:     DefaultConcurrency,
		MaxLinks:        DefaultMaxLinks,
		BrowserHeadless: DefaultBrowserHeadless,
		JSWait:          DefaultJSWaitTime,
		StateDir:        DefaultStateDir,
		RootURLFile:     DefaultRootURLFile,
		SelectionFile:   DefaultSelectionFile,
		OutputFile:      DefaultOutputFile,
		OutputFormat:    DefaultOutputFormat,
		AutoReplay:      DefaultAutoReplay,
		Progress:        DefaultProgress,
	}
}

// Load builds a Config by combining defaults, an optional config file, environment variables, and CLI flags.
// Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := Default()

	explicit := ""
	if cmd != nil {
		if f := cmd.Flags().Lookup("config"); f != nil {
			explicit = f.Value.String()
		}
	}
	if path := FindFile(explicit); path != "" {
		file, err := LoadFile(path)
		switch {
		case errors.Is(err, ErrConfigNotFound) && explicit == "":
			// raced with a delete; defaults are fine
		case err != nil:
			return nil, fmt.Errorf("load config file: %w", err)
		default:
			if err := file.apply(cfg); err != nil {
				return nil, fmt.Errorf("config file %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)

	if cmd != nil {
		applyFlags(cmd, cfg)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// BrowserPoolSize is the number of browser contexts to pre-warm. It follows
// the fetch concurrency but never exceeds the browser cap.
func (c *Config) BrowserPoolSize() int {
	if c.Concurrency > DefaultMaxBrowserPoolSize {
		return DefaultMaxBrowserPoolSize
	}
	return c.Concurrency
}

// RootURLPath is where the seed address is persisted
func (c *Config) RootURLPath() string {
	return filepath.Join(c.StateDir, c.RootURLFile)
}

// SelectionPath is where the selection log is appended
func (c *Config) SelectionPath() string {
	return filepath.Join(c.StateDir, c.SelectionFile)
}

// OutputPath is where the concatenated page text is written
func (c *Config) OutputPath() string {
	return filepath.Join(c.StateDir, c.OutputFile)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CURATE_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("CURATE_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CURATE_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("CURATE_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("CURATE_STATE_DIR"); v != "" {
		cfg.StateDir = v
	}
	if v := os.Getenv("CURATE_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Concurrency = n
		}
	}
}

func applyFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()

	if f := flags.Lookup("user-agent"); f != nil && f.Changed {
		cfg.UserAgent = f.Value.String()
	}
	if f := flags.Lookup("proxy"); f != nil && f.Changed {
		cfg.Proxy = f.Value.String()
	}
	if f := flags.Lookup("timeout"); f != nil && f.Changed {
		if d, err := time.ParseDuration(f.Value.String()); err == nil {
			cfg.HTTPTimeout = d
		}
	}
	if f := flags.Lookup("json"); f != nil && f.Changed {
		cfg.JSONLog = f.Value.String() == "true"
	}
	if f := flags.Lookup("verbose"); f != nil && f.Value.String() == "true" {
		cfg.LogLevel = "debug"
	}
	if f := flags.Lookup("quiet"); f != nil && f.Value.String() == "true" {
		cfg.Progress = false
	}
	if hs, err := flags.GetStringArray("header"); err == nil && len(hs) > 0 {
		cfg.Headers = append(cfg.Headers, hs...)
	}
	if f := flags.Lookup("mode"); f != nil && f.Changed {
		cfg.Mode = f.Value.String()
	}
	if n, err := flags.GetInt("concurrency"); err == nil && n > 0 {
		cfg.Concurrency = n
	}
	if f := flags.Lookup("state-dir"); f != nil && f.Changed {
		cfg.StateDir = f.Value.String()
	}
	if f := flags.Lookup("output"); f != nil && f.Changed {
		cfg.OutputFile = f.Value.String()
	}
	if f := flags.Lookup("format"); f != nil && f.Changed {
		cfg.OutputFormat = f.Value.String()
	}
	if f := flags.Lookup("no-auto-replay"); f != nil && f.Value.String() == "true" {
		cfg.AutoReplay = false
	}
	if f := flags.Lookup("visible"); f != nil && f.Value.String() == "true" {
		cfg.BrowserHeadless = false
	}
}
