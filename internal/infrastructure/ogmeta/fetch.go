package ogmeta

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

const (
	GooglebotUserAgent = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"

	defaultFetchTimeout = 8 * time.Second
	maxPageBytes        = 5 << 20
)

var ErrInvalidURL = errors.New("invalid url")

// Page is an upstream response as seen by the fetcher.
type Page struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

func (p Page) OK() bool {
	return p.StatusCode >= 200 && p.StatusCode < 300
}

func (p Page) IsHTML() bool {
	return strings.Contains(strings.ToLower(p.ContentType), "text/html")
}

type Fetcher struct {
	timeout   time.Duration
	userAgent string
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Fetcher{timeout: timeout, userAgent: GooglebotUserAgent}
}

// Fetch performs one GET with a fresh collector. Non-2xx responses are returned as a Page, not an error;
// only transport failures produce an error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	if f == nil {
		return Page{}, fmt.Errorf("nil fetcher")
	}
	target, err := validateURL(rawURL)
	if err != nil {
		return Page{}, err
	}
	if ctx.Err() != nil {
		return Page{}, ctx.Err()
	}

	timeout := f.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return Page{}, context.DeadlineExceeded
	}

	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.MaxBodySize(maxPageBytes),
		colly.ParseHTTPErrorResponse(),
	)
	c.SetRequestTimeout(timeout)

	var page Page
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html")
	})

	c.OnResponse(func(r *colly.Response) {
		page.StatusCode = r.StatusCode
		if r.Headers != nil {
			page.ContentType = r.Headers.Get("Content-Type")
		}
		page.Body = r.Body
	})

	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if err := c.Visit(target); err != nil {
		if reqErr == nil {
			reqErr = err
		}
	}
	c.Wait()

	if reqErr != nil {
		return Page{}, fmt.Errorf("fetch %s: %w", target, reqErr)
	}
	return page, nil
}

// IsTimeout reports whether err came from the fetch deadline rather than a refused or broken connection.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func validateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return u.String(), nil
}
