package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractYouTubeID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":             "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?t=10":                       "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":               "dQw4w9WgXcQ",
		"https://www.youtube.com/watch?feature=share&v=abcDEF123": "abcDEF123",
		"https://example.com/watch?v=dQw4w9WgXcQ":                 "",
		"https://youtu.be/\"><script>":                            "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ExtractYouTubeID(in), in)
	}
}

func TestRender_GFMAndSanitize(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n<script>alert(1)</script>\n\n```go\nfmt.Println(1)\n```\n")
	require.NoError(t, err)

	assert.Contains(t, out, `<h1 id="title">Title</h1>`)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, `class="language-go"`)
	assert.NotContains(t, out, "<script>")
}

func TestRender_YouTubeEmbed(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("Intro text.\n\n[Demo](https://www.youtube.com/watch?v=dQw4w9WgXcQ)\n\nSee [docs](https://example.com).\n")
	require.NoError(t, err)

	assert.Contains(t, out, `src="https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ"`)
	assert.Contains(t, out, `title="Demo"`)
	assert.NotContains(t, out, `<p><div`)
	assert.Contains(t, out, `href="https://example.com"`)
}

func TestRender_NoYouTubeKeepsFragment(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("plain *text*")
	require.NoError(t, err)
	assert.Equal(t, "<p>plain <em>text</em></p>\n", out)
}
