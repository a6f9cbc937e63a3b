package usecase

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"portfolio/internal/domain/resume"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type sitemapDocument struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

type slugLister interface {
	Slugs() []string
}

type bookmarkLister interface {
	Bookmarks() []resume.Bookmark
}

type Sitemap struct {
	siteURL   string
	blog      slugLister
	bookmarks bookmarkLister
	now       func() time.Time
}

func NewSitemapUsecase(siteURL string, blog slugLister) *Sitemap {
	return &Sitemap{siteURL: strings.TrimRight(strings.TrimSpace(siteURL), "/"), blog: blog, now: time.Now}
}

// WithBookmarks lists /links in the sitemap whenever b has at least one bookmark.
func (u *Sitemap) WithBookmarks(b bookmarkLister) *Sitemap {
	u.bookmarks = b
	return u
}

func (u *Sitemap) URLs() []SitemapURL {
	lastMod := u.now().UTC().Format(time.RFC3339)
	out := []SitemapURL{
		{Loc: u.siteURL + "/", LastMod: lastMod, ChangeFreq: "daily", Priority: 0.7},
	}
	if u.bookmarks != nil && len(u.bookmarks.Bookmarks()) > 0 {
		out = append(out, SitemapURL{Loc: u.siteURL + "/links", LastMod: lastMod, ChangeFreq: "weekly", Priority: 0.9})
	}
	out = append(out, SitemapURL{Loc: u.siteURL + "/blog", LastMod: lastMod, ChangeFreq: "weekly", Priority: 0.8})
	if u.blog != nil {
		for _, slug := range u.blog.Slugs() {
			out = append(out, SitemapURL{
				Loc:        u.siteURL + "/blog/" + slug,
				LastMod:    lastMod,
				ChangeFreq: "monthly",
				Priority:   0.7,
			})
		}
	}
	return out
}

func (u *Sitemap) XML() ([]byte, error) {
	doc := sitemapDocument{Xmlns: sitemapNamespace, URLs: u.URLs()}
	b, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), b...), nil
}

func (u *Sitemap) Robots() string {
	return fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", u.siteURL)
}
