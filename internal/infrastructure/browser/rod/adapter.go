package rod

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"analyst-agent/internal/application/port/output"
	"analyst-agent/internal/domain/entity"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.PageFetcher = (*FetcherAdapter)(nil)

// FetcherAdapter drives one headless Chromium instance. Each Fetch opens a
// fresh page and closes it on every exit path, so a navigation timeout never
// leaves a page hanging.
type FetcherAdapter struct {
	browser    *rod.Browser
	launcher   *launcher.Launcher
	navTimeout time.Duration
}

type Config struct {
	Headless   bool
	NoSandbox  bool
	NavTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Headless:   true,
		NoSandbox:  true,
		NavTimeout: 60 * time.Second,
	}
}

func NewFetcherAdapter(ctx context.Context, cfg Config) (*FetcherAdapter, error) {
	// NoSandbox and disable-setuid-sandbox are required to launch inside
	// restricted container environments.
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox).
		Set("disable-setuid-sandbox")

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(url).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &FetcherAdapter{
		browser:    browser,
		launcher:   l,
		navTimeout: cfg.NavTimeout,
	}, nil
}

// Fetch navigates to url, waits for the DOM to settle (not full network
// idle) and writes the rendered HTML verbatim to outputPath, overwriting any
// existing file.
func (f *FetcherAdapter) Fetch(ctx context.Context, pageURL, outputPath string) (*entity.ScrapeResult, error) {
	page, err := f.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(f.navTimeout)

	if err := page.Navigate(pageURL); err != nil {
		return nil, fmt.Errorf("navigation failed: %w", err)
	}
	if err := page.WaitDOMStable(300*time.Millisecond, 0); err != nil {
		return nil, fmt.Errorf("navigation timeout: %w", err)
	}

	obj, err := page.Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return nil, fmt.Errorf("capture html: %w", err)
	}
	var content gson.JSON = obj.Value

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(content.Str()), 0o644); err != nil {
		return nil, fmt.Errorf("write html: %w", err)
	}

	return &entity.ScrapeResult{OK: true, File: outputPath, URL: pageURL}, nil
}

func (f *FetcherAdapter) Close() {
	if f.browser != nil {
		_ = f.browser.Close()
	}
	if f.launcher != nil {
		f.launcher.Cleanup()
	}
}
