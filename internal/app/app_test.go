package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/law-makers/curate/internal/config"
	"github.com/law-makers/curate/internal/engine"
)

func testConfig(mode string) *config.Config {
	cfg := config.Default()
	cfg.Mode = mode
	cfg.Progress = false
	return cfg
}

func TestNew_NilConfig(t *testing.T) {
	if _, err := New(context.Background(), nil); err == nil {
		t.Fatal("Expected error for nil config")
	}
}

func TestNew_StaticMode(t *testing.T) {
	a, err := New(context.Background(), testConfig("static"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close(context.Background())

	if a.Fetcher.Name() != "StaticScraper" {
		t.Errorf("Expected static fetcher, got %s", a.Fetcher.Name())
	}
	if a.Pool == nil || a.Cache == nil {
		t.Error("Expected fetch pool and cache to be wired")
	}
	if a.BrowserPool != nil {
		t.Error("Static mode must not start a browser")
	}
}

func TestNew_AutoModeIsLazy(t *testing.T) {
	a, err := New(context.Background(), testConfig("auto"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close(context.Background())

	if a.Fetcher.Name() != "HybridScraper" {
		t.Errorf("Expected hybrid fetcher, got %s", a.Fetcher.Name())
	}
	if a.BrowserPool != nil {
		t.Error("Auto mode must not start a browser up front")
	}
}

func TestNew_BrowserStartFailureIsFatal(t *testing.T) {
	cfg := testConfig("browser")
	cfg.ChromePath = filepath.Join(t.TempDir(), "no-such-chrome")

	_, err := New(context.Background(), cfg)
	if err == nil {
		t.Fatal("Expected browser mode to fail without a usable browser")
	}
	if !engine.IsFatal(err) {
		t.Errorf("Expected a fatal browser error, got %v", err)
	}
}

func TestEnsureBrowserPool_FailureIsSticky(t *testing.T) {
	cfg := testConfig("auto")
	cfg.ChromePath = filepath.Join(t.TempDir(), "no-such-chrome")

	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close(context.Background())

	first := a.EnsureBrowserPool(context.Background())
	second := a.EnsureBrowserPool(context.Background())
	if first == nil || !errors.Is(second, first) {
		t.Errorf("Expected the first failure to be returned again, got %v then %v", first, second)
	}
	if _, err := a.browserFetcher(); err == nil {
		t.Error("Expected browserFetcher to report the failure")
	}
}

func TestNew_InvalidProxy(t *testing.T) {
	cfg := testConfig("static")
	cfg.Proxy = "://bad"
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("Expected invalid proxy to be rejected")
	}
}
