// Package ogmeta fetches web pages and extracts the Open Graph fields used for link previews.
package ogmeta

import (
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Metadata is the link-preview payload. Absent values serialize as null.
type Metadata struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Favicon     *string `json:"favicon"`
	URL         string  `json:"url"`
}

// Empty is the payload returned when nothing could be extracted.
func Empty(pageURL string) Metadata {
	return Metadata{URL: pageURL}
}

func (m Metadata) HasTitle() bool {
	return m.Title != nil && *m.Title != ""
}

var faviconSelectors = []string{
	`link[rel="icon"][type="image/svg+xml"]`,
	`link[rel="apple-touch-icon"]`,
	`link[rel="icon"][sizes*="1"]`,
	`link[rel="shortcut icon"]`,
	`link[rel="icon"]`,
}

func ExtractHTML(r io.Reader, pageURL string) (Metadata, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Empty(pageURL), err
	}
	return Extract(doc, pageURL), nil
}

func Extract(doc *goquery.Document, pageURL string) Metadata {
	out := Empty(pageURL)
	if doc == nil {
		return out
	}

	out.Title = firstText(
		attr(doc, `meta[property="og:title"]`, "content"),
		doc.Find("title").First().Text(),
		attr(doc, `meta[name="title"]`, "content"),
	)
	out.Description = firstText(
		attr(doc, `meta[property="og:description"]`, "content"),
		attr(doc, `meta[name="description"]`, "content"),
	)
	out.Image = resolve(pageURL, attr(doc, `meta[property="og:image"]`, "content"))

	for _, sel := range faviconSelectors {
		if fav := resolve(pageURL, attr(doc, sel, "href")); fav != nil {
			out.Favicon = fav
			break
		}
	}
	if out.Favicon == nil {
		out.Favicon = resolve(pageURL, "/favicon.ico")
	}
	return out
}

func attr(doc *goquery.Document, selector, name string) string {
	v, _ := doc.Find(selector).First().Attr(name)
	return v
}

// firstText returns the first candidate that is non-blank after trimming.
func firstText(candidates ...string) *string {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c != "" {
			return &c
		}
	}
	return nil
}

// resolve makes ref absolute against base. Unresolvable refs are kept only when they already look absolute.
func resolve(base, ref string) *string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	fallback := func() *string {
		if strings.HasPrefix(ref, "http") {
			return &ref
		}
		return nil
	}

	b, err := url.Parse(strings.TrimSpace(base))
	if err != nil || b.Scheme == "" || b.Host == "" {
		return fallback()
	}
	r, err := url.Parse(ref)
	if err != nil {
		return fallback()
	}
	s := b.ResolveReference(r).String()
	return &s
}
