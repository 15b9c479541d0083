package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

const (
	browserTimeout = 30 * time.Second
	// Settle delay after the wait selector appears, for final paints of
	// lazily-rendered listing items.
	browserSettle = 2 * time.Second
)

// Browser fetches pages that only render their listings client-side. It is
// an optional capability: construction fails when no Chromium is available,
// and the pipeline skips browser-backed sources in that case.
type Browser struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewBrowser launches a headless Chromium instance. The launch happens
// eagerly so a missing browser surfaces here rather than mid-run.
func NewBrowser(parent context.Context) (*Browser, error) {
	ctx, cancel := chromedp.NewContext(parent)
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		return nil, fmt.Errorf("launching browser: %w", err)
	}
	return &Browser{ctx: ctx, cancel: cancel}, nil
}

// Close shuts the browser down.
func (b *Browser) Close() {
	b.cancel()
}

// Document navigates to url, waits for waitSelector to become visible plus
// a short settle delay, and returns the rendered DOM as a queryable tree.
func (b *Browser) Document(ctx context.Context, url, waitSelector string) (*goquery.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(b.ctx, browserTimeout)
	defer cancel()

	var html string
	tasks := chromedp.Tasks{
		chromedp.Navigate(url),
		chromedp.WaitVisible(waitSelector, chromedp.ByQuery),
		chromedp.Sleep(browserSettle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	}
	if err := chromedp.Run(runCtx, tasks); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing rendered HTML from %s: %w", url, err)
	}
	return doc, nil
}
