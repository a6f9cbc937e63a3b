package web

import (
	"bytes"
	"html/template"
	"testing"

	"portfolio/internal/domain/blog"
	"portfolio/internal/domain/repo"
	"portfolio/internal/domain/resume"
	"portfolio/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meta() usecase.PageMeta {
	return usecase.PageMeta{
		Title:       "Jane Doe",
		Description: "Engineer & writer",
		Canonical:   "https://jane.dev/",
		OGTitle:     "Jane Doe",
		OGImage:     "https://jane.dev/og-image.png",
		OGType:      "profile",
		SiteName:    "Jane Doe",
		Author:      "Jane Doe",
		Keywords:    []string{"Jane Doe", "Go"},
	}
}

func TestRenderer_Home(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	lang := "Go"
	page := HomePage{
		Layout:  NewLayout(meta()),
		Profile: &resume.Resume{Name: "Jane Doe", Summary: "Builds things", Skills: []string{"Go", "SQL"}},
		BioHTML: template.HTML("<p>bio <em>here</em></p>"),
		Repos: usecase.ReposResult{
			Repositories:      []repo.Repository{{Name: "cerberus", HTMLURL: "https://github.com/jane/cerberus", StargazersCount: 1200, Language: &lang}},
			TotalStars:        1200,
			TotalStarsDisplay: "1.2k",
			Source:            usecase.ReposSourceAPI,
		},
		Posts: []blog.Post{{Slug: "hello", Title: "Hello <World>", Date: "2025-01-01"}},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageHome, page))
	html := buf.String()

	assert.Contains(t, html, "<title>Jane Doe</title>")
	assert.Contains(t, html, `<meta property="og:type" content="profile">`)
	assert.Contains(t, html, `<meta name="keywords" content="Jane Doe, Go">`)
	assert.Contains(t, html, `content="Engineer &amp; writer"`)
	assert.Contains(t, html, "~ 1.2k stars")
	assert.Contains(t, html, "card repo highlight")
	assert.Contains(t, html, "<p>bio <em>here</em></p>")
	assert.Contains(t, html, "Hello &lt;World&gt;")
	assert.Contains(t, html, `href="/blog/hello"`)
}

func TestRenderer_BlogPostVariants(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	internal := BlogPostPage{
		Layout: NewLayout(meta()),
		View: usecase.BlogPostView{
			Post:             blog.Post{Slug: "a", Title: "A"},
			ContentAvailable: true,
			Share:            usecase.ShareLinksFor("A", "https://jane.dev/blog/a", ""),
		},
		HTML: template.HTML("<h2 id=\"x\">X</h2>"),
	}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageBlogPost, internal))
	assert.Contains(t, buf.String(), `<h2 id="x">X</h2>`)
	assert.Contains(t, buf.String(), "https://www.linkedin.com/sharing/share-offsite/?url=https%3A%2F%2Fjane.dev%2Fblog%2Fa")

	missing := internal
	missing.View.ContentAvailable = false
	missing.HTML = ""
	buf.Reset()
	require.NoError(t, r.Render(&buf, PageBlogPost, missing))
	assert.Contains(t, buf.String(), "Content unavailable")

	external := internal
	external.View.Post.ExternalURL = "https://medium.com/@jane/a"
	buf.Reset()
	require.NoError(t, r.Render(&buf, PageBlogPost, external))
	assert.Contains(t, buf.String(), `href="https://medium.com/@jane/a"`)
	assert.NotContains(t, buf.String(), `<h2 id="x">`)
}

func TestRenderer_Links(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageLinks, LinksPage{
		Layout: NewLayout(meta()),
		Bookmarks: []resume.Bookmark{
			{Title: "Go Memory Model", URL: "https://www.go.dev/ref/mem", Note: "reread often"},
		},
	}))
	html := buf.String()
	assert.Contains(t, html, `data-preview-url="https://www.go.dev/ref/mem"`)
	assert.Contains(t, html, "Go Memory Model")
	assert.Contains(t, html, `<p class="bookmark-note">reread often</p>`)
	assert.Contains(t, html, "<span>go.dev</span>")
	assert.Contains(t, html, `<a href="/links">Links</a>`)

	buf.Reset()
	require.NoError(t, r.Render(&buf, PageLinks, LinksPage{Layout: NewLayout(meta())}))
	assert.Contains(t, buf.String(), "No links yet.")
}

func TestRenderer_IndexAndNotFound(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageBlogIndex, BlogIndexPage{Layout: NewLayout(meta())}))
	assert.Contains(t, buf.String(), "No posts yet.")

	buf.Reset()
	require.NoError(t, r.Render(&buf, PageNotFound, NotFoundPage{Layout: NewLayout(meta()), Path: "/nope"}))
	assert.Contains(t, buf.String(), "<code>/nope</code>")

	assert.Error(t, r.Render(&buf, "missing", nil))
}
