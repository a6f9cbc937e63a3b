package blog

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
)

var ErrNotFound = errors.New("blog post not found")

const wordsPerMinute = 200

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type Post struct {
	Slug        string   `json:"slug" yaml:"slug"`
	Title       string   `json:"title" yaml:"title"`
	Date        string   `json:"date" yaml:"date"`
	Excerpt     string   `json:"excerpt" yaml:"excerpt"`
	Content     string   `json:"content,omitempty" yaml:"-"`
	ExternalURL string   `json:"external_url,omitempty" yaml:"external_url"`
	Tags        []string `json:"tags" yaml:"tags"`
	ReadingTime string   `json:"reading_time" yaml:"reading_time"`
	Published   *bool    `json:"published,omitempty" yaml:"published"`
	OGImage     string   `json:"og_image,omitempty" yaml:"og_image"`
}

// IsPublished treats an absent flag as published.
func (p Post) IsPublished() bool {
	return p.Published == nil || *p.Published
}

func (p Post) IsExternal() bool {
	return strings.TrimSpace(p.ExternalURL) != ""
}

var dateLayouts = []string{
	"January 2, 2006",
	"January 2006",
	"Jan 2, 2006",
	"Jan 2006",
	"2006-01-02",
	"2006",
}

// ParseDate accepts the display formats used in the content file.
func ParseDate(s string) (time.Time, bool) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Published filters out unpublished posts and orders the rest newest first.
// Posts with unparseable dates go last, in input order.
func Published(posts []Post) []Post {
	type dated struct {
		post Post
		at   time.Time
		ok   bool
	}

	items := make([]dated, 0, len(posts))
	for _, p := range posts {
		if !p.IsPublished() {
			continue
		}
		at, ok := ParseDate(p.Date)
		items = append(items, dated{post: p, at: at, ok: ok})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ok != items[j].ok {
			return items[i].ok
		}
		return items[i].at.After(items[j].at)
	})

	out := make([]Post, 0, len(items))
	for _, it := range items {
		out = append(out, it.post)
	}
	return out
}

func ReadingTime(content string) string {
	words := len(strings.Fields(content))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

func ValidSlug(slug string) bool {
	return slugRe.MatchString(slug)
}

// ValidateSlugs checks every slug is URL-safe and unique.
func ValidateSlugs(posts []Post) error {
	seen := make(map[string]struct{}, len(posts))
	for i, p := range posts {
		if !ValidSlug(p.Slug) {
			return fmt.Errorf("blog[%d]: invalid slug %q", i, p.Slug)
		}
		if _, ok := seen[p.Slug]; ok {
			return fmt.Errorf("blog[%d]: duplicate slug %q", i, p.Slug)
		}
		seen[p.Slug] = struct{}{}
	}
	return nil
}
