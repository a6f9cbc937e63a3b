// Package markdown turns blog and bio Markdown into sanitized HTML.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var (
	youTubePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
		regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
	}
	videoIDRe    = regexp.MustCompile(`^[A-Za-z0-9_-]{6,20}$`)
	codeLangRe   = regexp.MustCompile(`^language-[A-Za-z0-9_+-]+$`)
	embedBaseURL = "https://www.youtube-nocookie.com/embed/"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(codeLangRe).OnElements("code")
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.RequireNoFollowOnLinks(false)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{md: md, policy: policy}
}

// Render converts Markdown to sanitized HTML and swaps standalone YouTube links for embeds.
func (r *Renderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	safe := r.policy.SanitizeBytes(buf.Bytes())
	return embedYouTube(string(safe))
}

// ExtractYouTubeID returns the video id of a watch, short or embed URL, or "" when none matches.
func ExtractYouTubeID(u string) string {
	for _, re := range youTubePatterns {
		m := re.FindStringSubmatch(u)
		if len(m) < 2 {
			continue
		}
		if videoIDRe.MatchString(m[1]) {
			return m[1]
		}
		return ""
	}
	return ""
}

func embedYouTube(fragment string) (string, error) {
	if !strings.Contains(fragment, "youtu") {
		return fragment, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	if err != nil {
		return "", fmt.Errorf("parse rendered html: %w", err)
	}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		id := ExtractYouTubeID(href)
		if id == "" {
			return
		}
		title := strings.TrimSpace(a.Text())
		if title == "" || title == href {
			title = "YouTube video"
		}
		embed := iframeHTML(id, title)

		// A link alone in its paragraph replaces the paragraph so no <div> ends up inside <p>.
		p := a.Parent()
		if goquery.NodeName(p) == "p" && p.Children().Length() == 1 && strings.TrimSpace(p.Text()) == strings.TrimSpace(a.Text()) {
			p.ReplaceWithHtml(embed)
			return
		}
		a.ReplaceWithHtml(embed)
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serialize rendered html: %w", err)
	}
	return out, nil
}

func iframeHTML(id, title string) string {
	return `<div class="video-embed"><iframe src="` + embedBaseURL + id +
		`" title="` + html.EscapeString(title) +
		`" loading="lazy" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen></iframe></div>`
}
