package md2docx

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// screenshoter abstracts preview capture to keep tests browser-free.
type screenshoter interface {
	CapturePage(ctx context.Context, html string) ([]byte, error)
	Close() error
}

// Compile-time interface check.
var _ screenshoter = (*rodScreenshoter)(nil)

// rodScreenshoter renders preview pages in headless Chrome via go-rod.
// Rod downloads Chromium on first run if no browser is found.
type rodScreenshoter struct {
	browser *rod.Browser
	timeout time.Duration
}

func newRodScreenshoter(timeout time.Duration) *rodScreenshoter {
	return &rodScreenshoter{timeout: timeout}
}

// ensureBrowser lazily connects on first capture, so converters that never
// screenshot never start a browser.
func (r *rodScreenshoter) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Pre-installed browser for containerized environments.
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	// Sandboxing is unavailable in CI containers.
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodScreenshoter) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// CapturePage writes the page to a temporary file, loads it in the
// browser, and captures a full-page PNG.
func (r *rodScreenshoter) CapturePage(ctx context.Context, html string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}
	defer cleanup()

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + path})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := proto.PageCaptureScreenshotFormatPng
	data, err := page.Screenshot(true, &proto.PageCaptureScreenshot{Format: format})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}
	return data, nil
}
