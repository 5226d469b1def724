package prefill

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// minContentLength is the minimum HTML size to trust a plain HTTP fetch.
// Public profile pages served to anonymous clients are sometimes a
// JavaScript shell; shorter responses trigger the headless fallback.
const minContentLength = 500

// ShouldUseBrowser reports whether the fetched HTML is too thin to contain
// the Open Graph metadata and a rendered fetch is worth trying.
func ShouldUseBrowser(html string) bool {
	return len(strings.TrimSpace(html)) < minContentLength
}

// FetchRendered loads the page in a headless browser and returns the
// rendered HTML. Requires Chrome/Chromium on the system.
func FetchRendered(ctx context.Context, urlStr string, timeout time.Duration, verbose bool) (string, error) {
	if verbose {
		log.Printf("[PREFILL] rendering %s in headless browser", urlStr)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "browser rendering failed", Cause: err}
	}

	if verbose {
		log.Printf("[PREFILL] rendered HTML: %d bytes", len(html))
	}
	return html, nil
}

// Fetch retrieves the page over plain HTTP and falls back to the headless
// browser when the response looks like an unrendered shell (or when the
// plain fetch is refused outright) and useBrowser is set.
func Fetch(ctx context.Context, urlStr string, useBrowser, verbose bool) (string, error) {
	html, err := FetchHTML(ctx, urlStr)
	if err == nil && !ShouldUseBrowser(html) {
		return html, nil
	}
	if !useBrowser {
		return html, err
	}
	return FetchRendered(ctx, urlStr, DefaultTimeout, verbose)
}
