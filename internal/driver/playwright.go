package driver

import (
	"context"
	"errors"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"github.com/frherrer/GoE2E-PageForge/internal/domain"
)

// Options configures a playwright browser session.
type Options struct {
	Browser           string // chromium, firefox or webkit
	Headless          bool
	NavigationTimeout time.Duration
	Log               *logrus.Logger
}

// PlaywrightDriver implements Driver on top of playwright-go. One instance
// owns one browser context and one page, matching the one-session-per-run
// isolation model.
type PlaywrightDriver struct {
	pw         *playwright.Playwright
	browser    playwright.Browser
	browserCtx playwright.BrowserContext
	page       playwright.Page
	navTimeout time.Duration
	log        *logrus.Logger
}

// NewPlaywright starts playwright, launches the configured browser and opens
// a fresh page.
func NewPlaywright(opts Options) (*PlaywrightDriver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, domain.NewError("driver", "", "", "failed to start playwright",
			errors.Join(domain.ErrDriverUnavailable, err))
	}

	var browserType playwright.BrowserType
	switch opts.Browser {
	case "firefox":
		browserType = pw.Firefox
	case "webkit":
		browserType = pw.WebKit
	default:
		browserType = pw.Chromium
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, domain.NewError("driver", "", "", "failed to launch browser",
			errors.Join(domain.ErrDriverUnavailable, err))
	}

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		JavaScriptEnabled: playwright.Bool(true),
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, domain.NewError("driver", "", "", "failed to create browser context",
			errors.Join(domain.ErrDriverUnavailable, err))
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		browserCtx.Close()
		browser.Close()
		pw.Stop()
		return nil, domain.NewError("driver", "", "", "failed to open page",
			errors.Join(domain.ErrDriverUnavailable, err))
	}

	navTimeout := opts.NavigationTimeout
	if navTimeout <= 0 {
		navTimeout = 30 * time.Second
	}

	return &PlaywrightDriver{
		pw:         pw,
		browser:    browser,
		browserCtx: browserCtx,
		page:       page,
		navTimeout: navTimeout,
		log:        opts.Log,
	}, nil
}

// Navigate loads the URL and waits for the network to go idle. Retrying is
// the caller's concern (see Policy); the driver performs one attempt.
func (d *PlaywrightDriver) Navigate(ctx context.Context, url string) error {
	if d.log != nil {
		d.log.Debugf("Navigating to %s", url)
	}
	_, err := d.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(float64(d.navTimeout.Milliseconds())),
	})
	return err
}

func (d *PlaywrightDriver) ExecuteScript(ctx context.Context, script string) (any, error) {
	return d.page.Evaluate(script)
}

func (d *PlaywrightDriver) CountBySelector(ctx context.Context, selector string) (int, error) {
	return d.page.Locator(selector).Count()
}

// Close tears the session down in page → context → browser → runtime order.
// Teardown is best effort; the first error is reported after everything has
// been attempted.
func (d *PlaywrightDriver) Close() error {
	var firstErr error
	if d.page != nil {
		if err := d.page.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if d.browserCtx != nil {
		if err := d.browserCtx.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if d.browser != nil {
		if err := d.browser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if d.pw != nil {
		if err := d.pw.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
