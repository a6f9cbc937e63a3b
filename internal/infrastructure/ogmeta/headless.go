package ogmeta

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// Headless renders pages in a local Chrome for sites that only fill their meta tags from JavaScript.
type Headless struct {
	timeout time.Duration
	settle  time.Duration
}

func NewHeadless(timeout time.Duration) *Headless {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Headless{timeout: timeout, settle: 1500 * time.Millisecond}
}

// Render returns the DOM of rawURL after scripts ran.
func (h *Headless) Render(ctx context.Context, rawURL string) (string, error) {
	if h == nil {
		return "", fmt.Errorf("nil headless renderer")
	}
	target, err := validateURL(rawURL)
	if err != nil {
		return "", err
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(GooglebotUserAgent),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, h.timeout)
	defer reqCancel()

	var html string
	err = chromedp.Run(reqCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("head", chromedp.ByQuery),
		chromedp.Sleep(h.settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", target, err)
	}
	if strings.TrimSpace(html) == "" {
		return "", fmt.Errorf("render %s: empty document", target)
	}
	return html, nil
}
