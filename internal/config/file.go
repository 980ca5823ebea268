package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File mirrors the YAML configuration file. Pointer fields distinguish
// "absent" from the zero value so the file only overrides what it sets.
type File struct {
	LogLevel      *string  `yaml:"log_level"`
	JSONLog       *bool    `yaml:"json_log"`
	Timeout       *string  `yaml:"timeout"`
	UserAgent     *string  `yaml:"user_agent"`
	Proxy         *string  `yaml:"proxy"`
	Headers       []string `yaml:"headers"`
	Concurrency   *int     `yaml:"concurrency"`
	MaxLinks      *int     `yaml:"max_links"`
	Mode          *string  `yaml:"mode"`
	Headless      *bool    `yaml:"headless"`
	ChromePath    *string  `yaml:"chrome_path"`
	JSWait        *string  `yaml:"js_wait"`
	StateDir      *string  `yaml:"state_dir"`
	RootURLFile   *string  `yaml:"root_url_file"`
	SelectionFile *string  `yaml:"selection_file"`
	OutputFile    *string  `yaml:"output_file"`
	OutputFormat  *string  `yaml:"output_format"`
	AutoReplay    *bool    `yaml:"auto_replay"`
	Progress      *bool    `yaml:"progress"`
}

// LoadFile reads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

// FindFile returns the configuration file to use, or "" if there is none.
// An explicit path wins; otherwise ./.curate.yaml, then the XDG config dir.
func FindFile(explicit string) string {
	if explicit != "" {
		return explicit
	}

	candidates := []string{
		DefaultConfigFile,
		filepath.Join(xdg.ConfigHome, AppName, "config.yaml"),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// apply copies every field set in the file onto cfg
func (f *File) apply(cfg *Config) error {
	if f.LogLevel != nil {
		cfg.LogLevel = *f.LogLevel
	}
	if f.JSONLog != nil {
		cfg.JSONLog = *f.JSONLog
	}
	if f.Timeout != nil {
		d, err := time.ParseDuration(*f.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	if f.UserAgent != nil {
		cfg.UserAgent = *f.UserAgent
	}
	if f.Proxy != nil {
		cfg.Proxy = *f.Proxy
	}
	if len(f.Headers) > 0 {
		cfg.Headers = append(cfg.Headers, f.Headers...)
	}
	if f.Concurrency != nil {
		cfg.Concurrency = *f.Concurrency
	}
	if f.MaxLinks != nil {
		cfg.MaxLinks = *f.MaxLinks
	}
	if f.Mode != nil {
		cfg.Mode = *f.Mode
	}
	if f.Headless != nil {
		cfg.BrowserHeadless = *f.Headless
	}
	if f.ChromePath != nil {
		cfg.ChromePath = *f.ChromePath
	}
	if f.JSWait != nil {
		d, err := time.ParseDuration(*f.JSWait)
		if err != nil {
			return fmt.Errorf("js_wait: %w", err)
		}
		cfg.JSWait = d
	}
	if f.StateDir != nil {
		cfg.StateDir = *f.StateDir
	}
	if f.RootURLFile != nil {
		cfg.RootURLFile = *f.RootURLFile
	}
	if f.SelectionFile != nil {
		cfg.SelectionFile = *f.SelectionFile
	}
	if f.OutputFile != nil {
		cfg.OutputFile = *f.OutputFile
	}
	if f.OutputFormat != nil {
		cfg.OutputFormat = *f.OutputFormat
	}
	if f.AutoReplay != nil {
		cfg.AutoReplay = *f.AutoReplay
	}
	if f.Progress != nil {
		cfg.Progress = *f.Progress
	}
	return nil
}
