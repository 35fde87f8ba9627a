package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the shortest posting text accepted from a plain
// download before falling back to the browser.
const MinContentLength = 500

// hydrationWait bounds how long Render waits for scripts to fill the page.
const hydrationWait = 5 * time.Second

// TooShort reports whether extracted text is short enough to suggest a
// script-rendered page.
func TooShort(text string) bool {
	return len(strings.TrimSpace(text)) < MinContentLength
}

// Render loads url in headless Chrome and returns the rendered HTML once the
// body holds MinContentLength characters of text or hydrationWait elapses.
// Chrome or Chromium must be installed.
func Render(ctx context.Context, url string, timeout time.Duration) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(DefaultUserAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()

	hydrated := fmt.Sprintf("document.body && document.body.innerText.trim().length >= %d", MinContentLength)

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// pages that never reach the threshold are still returned
			_ = chromedp.Poll(hydrated, nil,
				chromedp.WithPollingInterval(250*time.Millisecond),
				chromedp.WithPollingTimeout(hydrationWait),
			).Do(ctx)
			return nil
		}),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}
	return html, nil
}
