// Package session owns the real browser. A single Manager holds the
// Playwright driver and one Chromium process; each verification call gets an
// isolated browser context with fresh cookie and storage state.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"licensure/internal/verify/browse"
	"licensure/pkg/platform/sentinel"
)

// Config controls browser startup.
type Config struct {
	// ExecutablePath overrides browser discovery; empty means probe the
	// usual container locations and fall back to the bundled browser.
	ExecutablePath string
	Headless       bool
	// ActionTimeout is the per-action default set on every session so no
	// interaction can hang indefinitely.
	ActionTimeout time.Duration
}

// Manager launches the browser lazily on first acquire. A browser that
// cannot start fails the verification call that wanted it, not the host
// process.
type Manager struct {
	cfg    Config
	logger *slog.Logger

	mu      sync.Mutex
	driver  *playwright.Playwright
	browser playwright.Browser
}

func NewManager(cfg Config, logger *slog.Logger) *Manager {
	return &Manager{cfg: cfg, logger: logger}
}

// Acquire returns an isolated session. The caller must Close it on every
// exit path.
func (m *Manager) Acquire(ctx context.Context) (browse.Session, error) {
	browser, err := m.ensureBrowser()
	if err != nil {
		return nil, err
	}
	bctx, err := browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("new browser context: %w", err)
	}
	bctx.SetDefaultTimeout(float64(m.cfg.ActionTimeout.Milliseconds()))
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("new page: %w", err)
	}
	return &Session{ctx: bctx, page: page}, nil
}

func (m *Manager) ensureBrowser() (playwright.Browser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.browser != nil && m.browser.IsConnected() {
		return m.browser, nil
	}

	if m.driver == nil {
		driver, err := playwright.Run()
		if err != nil {
			return nil, fmt.Errorf("start playwright driver: %v: %w", err, sentinel.ErrUnavailable)
		}
		m.driver = driver
	}

	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.cfg.Headless),
	}
	if path := m.executablePath(); path != "" {
		opts.ExecutablePath = playwright.String(path)
		m.logger.Info("using browser executable", "path", path)
	}
	browser, err := m.driver.Chromium.Launch(opts)
	if err != nil {
		return nil, fmt.Errorf("launch browser: %v: %w", err, sentinel.ErrUnavailable)
	}
	m.browser = browser
	return browser, nil
}

func (m *Manager) executablePath() string {
	if m.cfg.ExecutablePath != "" {
		return m.cfg.ExecutablePath
	}
	for _, p := range []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Close tears down the shared browser and driver.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.browser != nil {
		_ = m.browser.Close()
		m.browser = nil
	}
	if m.driver != nil {
		_ = m.driver.Stop()
		m.driver = nil
	}
}

// Session adapts one isolated browser context to the browse interfaces.
type Session struct {
	ctx  playwright.BrowserContext
	page playwright.Page
}

func (s *Session) Navigate(url string) error {
	if _, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	}); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

func (s *Session) Containers() []browse.Container {
	var out []browse.Container
	for _, p := range s.ctx.Pages() {
		main := p.MainFrame()
		out = append(out, &container{frame: main})
		for _, f := range p.Frames() {
			if f == main {
				continue
			}
			out = append(out, &container{frame: f})
		}
	}
	return out
}

func (s *Session) WindowCount() int {
	return len(s.ctx.Pages())
}

func (s *Session) Window(i int) browse.Container {
	return &container{frame: s.ctx.Pages()[i].MainFrame()}
}

func (s *Session) Close() {
	_ = s.ctx.Close()
}
