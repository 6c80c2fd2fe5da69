// Package history scrapes third-party vehicle-history timelines with a
// stealth-configured headless browser.
package history

import (
	"fmt"
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Launcher modes selected via configuration at process start.
const (
	ModeLocal   = "local"
	ModeSandbox = "sandbox"
)

// Launcher starts a headless browser. Two implementations exist because
// production execution environments cannot install a full browser the way
// a developer machine can.
type Launcher interface {
	Launch() (*rod.Browser, error)
}

// NewLauncher picks the launch strategy for the configured mode. bin
// overrides browser binary discovery when non-empty.
func NewLauncher(mode, bin string) Launcher {
	if mode == ModeSandbox {
		return &SandboxLauncher{Bin: bin}
	}
	return &LocalLauncher{Bin: bin}
}

// baseLauncher carries the flag set shared by both strategies: headless,
// automation fingerprints masked, stable viewport.
func baseLauncher() *launcher.Launcher {
	return launcher.New().
		Headless(true).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-gpu").
		Set("disable-extensions").
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-backgrounding-occluded-windows").
		Set("window-size", "1920,1080").
		Set("user-agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
}

func connect(l *launcher.Launcher) (*rod.Browser, error) {
	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	return browser, nil
}

// LocalLauncher drives a system-installed Chrome/Chromium, for interactive
// and development use.
type LocalLauncher struct {
	// Bin overrides binary discovery when set
	Bin string
}

func (l *LocalLauncher) Launch() (*rod.Browser, error) {
	lc := baseLauncher()

	bin := l.Bin
	if bin == "" {
		bin = findChromePath()
	}
	if bin != "" {
		lc = lc.Bin(bin)
	}

	return connect(lc)
}

// SandboxLauncher drives a pre-packaged browser binary inside a restricted
// serverless/container environment where the usual sandboxing and shared
// memory are unavailable.
type SandboxLauncher struct {
	// Bin is the path to the packaged binary; discovery still runs when
	// empty so containers with a distro chromium keep working
	Bin string
}

func (l *SandboxLauncher) Launch() (*rod.Browser, error) {
	lc := baseLauncher().
		Set("no-sandbox").
		Set("disable-setuid-sandbox").
		Set("disable-dev-shm-usage").
		Set("no-first-run").
		Set("disable-default-apps").
		Set("single-process")

	bin := l.Bin
	if bin == "" {
		bin = findChromePath()
	}
	if bin != "" {
		lc = lc.Bin(bin)
	}

	return connect(lc)
}

// findChromePath looks for a Chrome/Chromium binary in common locations.
func findChromePath() string {
	if chromeBin := os.Getenv("CHROME_BIN"); chromeBin != "" {
		if _, err := os.Stat(chromeBin); err == nil {
			return chromeBin
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
		"/opt/google/chrome/chrome",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	if path, ok := launcher.LookPath(); ok {
		return path
	}
	return ""
}
