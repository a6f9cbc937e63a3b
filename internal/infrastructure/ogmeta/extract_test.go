package ogmeta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func TestExtract_OpenGraphTags(t *testing.T) {
	html := `<html><head>
		<title>Fallback Title</title>
		<meta property="og:title" content="  OG Title  ">
		<meta property="og:description" content="OG description">
		<meta name="description" content="plain description">
		<meta property="og:image" content="/img/card.png">
		<link rel="icon" href="/favicon-32.png" sizes="32x32">
		<link rel="icon" type="image/svg+xml" href="/icon.svg">
	</head><body></body></html>`

	m, err := ExtractHTML(strings.NewReader(html), "https://example.com/posts/1")
	require.NoError(t, err)

	assert.Equal(t, "OG Title", str(m.Title))
	assert.Equal(t, "OG description", str(m.Description))
	assert.Equal(t, "https://example.com/img/card.png", str(m.Image))
	assert.Equal(t, "https://example.com/icon.svg", str(m.Favicon))
	assert.Equal(t, "https://example.com/posts/1", m.URL)
}

func TestExtract_Fallbacks(t *testing.T) {
	html := `<html><head>
		<title> Page Title </title>
		<meta name="description" content="plain description">
		<link rel="shortcut icon" href="https://cdn.example.org/fav.ico">
	</head></html>`

	m, err := ExtractHTML(strings.NewReader(html), "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, "Page Title", str(m.Title))
	assert.Equal(t, "plain description", str(m.Description))
	assert.Nil(t, m.Image)
	assert.Equal(t, "https://cdn.example.org/fav.ico", str(m.Favicon))
}

func TestExtract_BlankOGValuesFallThrough(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="   ">
		<meta property="og:description" content="">
		<title>Document Title</title>
		<meta name="description" content="plain description">
	</head></html>`

	m, err := ExtractHTML(strings.NewReader(html), "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, "Document Title", str(m.Title))
	assert.Equal(t, "plain description", str(m.Description))
}

func TestExtract_MetaTitleAndDefaultFavicon(t *testing.T) {
	html := `<html><head><meta name="title" content="Meta Title"></head></html>`

	m, err := ExtractHTML(strings.NewReader(html), "https://example.com/a/b")
	require.NoError(t, err)

	assert.Equal(t, "Meta Title", str(m.Title))
	assert.Nil(t, m.Description)
	assert.Equal(t, "https://example.com/favicon.ico", str(m.Favicon))
}

func TestExtract_FaviconPreferenceOrder(t *testing.T) {
	html := `<html><head>
		<link rel="icon" href="/plain.png">
		<link rel="icon" sizes="192x192" href="/large.png">
		<link rel="apple-touch-icon" href="/apple.png">
	</head></html>`

	m, err := ExtractHTML(strings.NewReader(html), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/apple.png", str(m.Favicon))
}

func TestExtract_BlankValuesBecomeNull(t *testing.T) {
	html := `<html><head><title>   </title><meta property="og:description" content=" "></head></html>`

	m, err := ExtractHTML(strings.NewReader(html), "https://example.com")
	require.NoError(t, err)
	assert.Nil(t, m.Title)
	assert.Nil(t, m.Description)
	assert.False(t, m.HasTitle())
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "https://a.com/x.png", str(resolve("https://a.com/p/q", "/x.png")))
	assert.Equal(t, "https://a.com/p/x.png", str(resolve("https://a.com/p/q", "x.png")))
	assert.Equal(t, "https://b.com/y.png", str(resolve("not a url", "https://b.com/y.png")))
	assert.Nil(t, resolve("not a url", "/y.png"))
	assert.Nil(t, resolve("https://a.com", ""))
}
