// Package web renders the server-side HTML pages from embedded templates.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"
	"time"

	"portfolio/internal/domain/blog"
	"portfolio/internal/domain/resume"
	"portfolio/internal/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageHome      = "home"
	PageBlogIndex = "blog_index"
	PageBlogPost  = "blog_post"
	PageNotFound  = "not_found"
	PageLinks     = "links"
)

var pages = []string{PageHome, PageBlogIndex, PageBlogPost, PageNotFound, PageLinks}

// Layout is the part of every page the shared <head> and chrome read from.
type Layout struct {
	Meta   usecase.PageMeta
	Author string
	Year   int
}

type HomePage struct {
	Layout
	Profile *resume.Resume
	BioHTML template.HTML
	Repos   usecase.ReposResult
	Posts   []blog.Post
}

type BlogIndexPage struct {
	Layout
	Posts []blog.Post
}

type BlogPostPage struct {
	Layout
	View usecase.BlogPostView
	// HTML is sanitized Markdown output.
	HTML template.HTML
}

// LinksPage lists bookmarks; site.js fills in each card from /api/og-image.
type LinksPage struct {
	Layout
	Bookmarks []resume.Bookmark
}

type NotFoundPage struct {
	Layout
	Path string
}

type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"join":  strings.Join,
		"lower": strings.ToLower,
		"host": func(raw string) string {
			u, err := url.Parse(raw)
			if err != nil || u.Host == "" {
				return raw
			}
			return strings.TrimPrefix(u.Host, "www.")
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

func NewLayout(meta usecase.PageMeta) Layout {
	return Layout{Meta: meta, Author: meta.Author, Year: time.Now().Year()}
}
