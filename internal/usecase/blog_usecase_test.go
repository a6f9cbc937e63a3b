package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"portfolio/internal/domain/blog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSource map[string]string

func (m mapSource) Load(slug string) (string, bool, error) {
	c, ok := m[slug]
	return c, ok, nil
}

type upperRenderer struct{}

func (upperRenderer) Render(src string) (string, error) {
	return "<p>" + strings.ToUpper(src) + "</p>", nil
}

func boolPtr(b bool) *bool { return &b }

func samplePosts() []blog.Post {
	return []blog.Post{
		{Slug: "older", Title: "Older", Date: "January 2, 2023", Tags: []string{"go"}},
		{Slug: "draft", Title: "Draft", Date: "March 2025", Published: boolPtr(false)},
		{Slug: "newer", Title: "Newer", Date: "2024-05-01", Excerpt: "fresh", OGImage: "https://cdn/x.png"},
		{Slug: "elsewhere", Title: "Elsewhere", Date: "Feb 2024", ExternalURL: "https://medium.com/@me/elsewhere"},
		{Slug: "missing", Title: "Missing", Date: "2022"},
	}
}

func newTestBlog() *Blog {
	return NewBlogUsecase(samplePosts(), "Jane Doe", "https://jane.dev/", mapSource{
		"older": "hello world",
	}, upperRenderer{}, nil)
}

func TestBlog_ListAndSlugs(t *testing.T) {
	u := newTestBlog()

	var slugs []string
	for _, p := range u.List() {
		slugs = append(slugs, p.Slug)
		assert.Empty(t, p.Content)
	}
	assert.Equal(t, []string{"newer", "elsewhere", "older", "missing"}, slugs)
	assert.Equal(t, []string{"newer", "older", "missing"}, u.Slugs())
}

func TestBlog_GetUnknownAndUnpublished(t *testing.T) {
	u := newTestBlog()
	for _, slug := range []string{"nope", "draft", "", "../etc/passwd"} {
		_, err := u.Get(context.Background(), slug)
		assert.True(t, errors.Is(err, ErrNotFound), slug)
		assert.True(t, errors.Is(err, blog.ErrNotFound), slug)
	}
}

func TestBlog_GetInternalPost(t *testing.T) {
	v, err := newTestBlog().Get(context.Background(), "older")
	require.NoError(t, err)

	assert.True(t, v.ContentAvailable)
	assert.Equal(t, "<p>HELLO WORLD</p>", v.HTML)
	assert.Equal(t, "1 min read", v.Post.ReadingTime)

	assert.Equal(t, "Older | Jane Doe Blog", v.Meta.Title)
	assert.Equal(t, "Read this blog post by Jane Doe.", v.Meta.Description)
	assert.Equal(t, "https://jane.dev/blog/older", v.Meta.Canonical)
	assert.Equal(t, "https://jane.dev/og-image.png", v.Meta.OGImage)
	assert.Equal(t, "article", v.Meta.OGType)
	assert.Equal(t, []string{"go", "blog", "Jane Doe"}, v.Meta.Keywords)
}

func TestBlog_GetMissingContent(t *testing.T) {
	v, err := newTestBlog().Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, v.ContentAvailable)
	assert.Empty(t, v.HTML)
}

func TestBlog_GetExternalPost(t *testing.T) {
	v, err := newTestBlog().Get(context.Background(), "elsewhere")
	require.NoError(t, err)
	assert.False(t, v.ContentAvailable)
	assert.Equal(t, "https://medium.com/@me/elsewhere", v.Meta.Canonical)
	assert.Contains(t, v.Share.LinkedIn, "url=https%3A%2F%2Fmedium.com%2F%40me%2Felsewhere")
}

func TestBlog_PostOGImageAndExcerpt(t *testing.T) {
	v, err := newTestBlog().Get(context.Background(), "newer")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/x.png", v.Meta.OGImage)
	assert.Equal(t, "fresh", v.Meta.Description)
}

func TestShareLinksFor(t *testing.T) {
	s := ShareLinksFor("Go & Rust", "https://jane.dev/blog/x", "")

	assert.Equal(t,
		"https://twitter.com/intent/tweet?text=Just%20read%20an%20interesting%20article%3A%20%22Go%20%26%20Rust%22&url=https%3A%2F%2Fjane.dev%2Fblog%2Fx",
		s.Twitter)
	assert.Equal(t, "https://www.linkedin.com/sharing/share-offsite/?url=https%3A%2F%2Fjane.dev%2Fblog%2Fx", s.LinkedIn)
	assert.Equal(t, "https://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2Fjane.dev%2Fblog%2Fx&quote=%22Go%20%26%20Rust%22", s.Facebook)
	assert.True(t, strings.HasPrefix(s.WhatsApp, "https://wa.me/?text=Hey%21%20Check%20out"))
	assert.Contains(t, s.WhatsApp, "%0A%0A%2AGo%20%26%20Rust%2A%0A%0A")
}

func TestBlog_IndexMeta(t *testing.T) {
	m := newTestBlog().IndexMeta()
	assert.Equal(t, "https://jane.dev/blog", m.Canonical)
	assert.Equal(t, "website", m.OGType)
}
