package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"portfolio/internal/domain/blog"
	"portfolio/internal/pkg/logger"

	"go.uber.org/zap"
)

type MarkdownSource interface {
	Load(slug string) (content string, found bool, err error)
}

type MarkdownRenderer interface {
	Render(src string) (string, error)
}

type ShareLinks struct {
	Twitter  string `json:"twitter"`
	LinkedIn string `json:"linkedin"`
	Facebook string `json:"facebook"`
	WhatsApp string `json:"whatsapp"`
}

// PageMeta feeds the <head> of a page: title, description, canonical URL and Open Graph/Twitter tags.
type PageMeta struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Canonical     string   `json:"canonical"`
	OGTitle       string   `json:"og_title"`
	OGImage       string   `json:"og_image"`
	OGType        string   `json:"og_type"`
	SiteName      string   `json:"site_name"`
	PublishedTime string   `json:"published_time,omitempty"`
	Author        string   `json:"author"`
	Keywords      []string `json:"keywords"`
}

type BlogPostView struct {
	Post             blog.Post
	HTML             string
	ContentAvailable bool
	Meta             PageMeta
	Share            ShareLinks
}

type BlogUsecase interface {
	List() []blog.Post
	Get(ctx context.Context, slug string) (BlogPostView, error)
	Slugs() []string
	IndexMeta() PageMeta
}

type Blog struct {
	posts    []blog.Post
	author   string
	siteURL  string
	content  MarkdownSource
	renderer MarkdownRenderer
	logger   *zap.Logger
}

func NewBlogUsecase(posts []blog.Post, author, siteURL string, content MarkdownSource, renderer MarkdownRenderer, log *zap.Logger) *Blog {
	return &Blog{
		posts:    blog.Published(posts),
		author:   strings.TrimSpace(author),
		siteURL:  strings.TrimRight(strings.TrimSpace(siteURL), "/"),
		content:  content,
		renderer: renderer,
		logger:   logger.OrNop(log).Named("blog"),
	}
}

// List returns published posts newest first, without bodies.
func (u *Blog) List() []blog.Post {
	out := make([]blog.Post, len(u.posts))
	for i, p := range u.posts {
		p.Content = ""
		out[i] = p
	}
	return out
}

// Slugs lists the internal posts that get their own page.
func (u *Blog) Slugs() []string {
	out := make([]string, 0, len(u.posts))
	for _, p := range u.posts {
		if p.IsExternal() {
			continue
		}
		out = append(out, p.Slug)
	}
	return out
}

// Get resolves a published post by slug. Unknown and unpublished slugs are both ErrNotFound.
func (u *Blog) Get(ctx context.Context, slug string) (BlogPostView, error) {
	slug = strings.TrimSpace(slug)
	var post blog.Post
	found := false
	for _, p := range u.posts {
		if p.Slug == slug {
			post, found = p, true
			break
		}
	}
	if !found {
		return BlogPostView{}, fmt.Errorf("%w: %w", ErrNotFound, blog.ErrNotFound)
	}

	view := BlogPostView{Post: post}
	view.Meta = u.postMeta(post)
	view.Share = ShareLinksFor(post.Title, view.Meta.Canonical, post.Excerpt)

	if post.IsExternal() {
		view.Post.Content = ""
		return view, nil
	}

	src := post.Content
	if src == "" && u.content != nil {
		loaded, ok, err := u.content.Load(slug)
		if err != nil {
			u.logger.Warn("load markdown failed", zap.String("slug", slug), zap.Error(err))
		} else if ok {
			src = loaded
		}
	}
	if strings.TrimSpace(src) == "" {
		view.Post.Content = ""
		return view, nil
	}

	view.Post.Content = src
	if view.Post.ReadingTime == "" {
		view.Post.ReadingTime = blog.ReadingTime(src)
	}
	if u.renderer != nil {
		html, err := u.renderer.Render(src)
		if err != nil {
			u.logger.Error("render markdown failed", zap.String("slug", slug), zap.Error(err))
			return view, nil
		}
		view.HTML = html
	}
	view.ContentAvailable = true
	return view, nil
}

func (u *Blog) postMeta(p blog.Post) PageMeta {
	canonical := u.siteURL + "/blog/" + p.Slug
	if p.IsExternal() {
		canonical = strings.TrimSpace(p.ExternalURL)
	}
	image := strings.TrimSpace(p.OGImage)
	if image == "" {
		image = u.siteURL + "/og-image.png"
	}
	desc := strings.TrimSpace(p.Excerpt)
	if desc == "" {
		desc = fmt.Sprintf("Read this blog post by %s.", u.author)
	}
	keywords := append(append([]string{}, p.Tags...), "blog", u.author)

	return PageMeta{
		Title:         fmt.Sprintf("%s | %s Blog", p.Title, u.author),
		Description:   desc,
		Canonical:     canonical,
		OGTitle:       p.Title,
		OGImage:       image,
		OGType:        "article",
		SiteName:      fmt.Sprintf("%s's Blog", u.author),
		PublishedTime: p.Date,
		Author:        u.author,
		Keywords:      keywords,
	}
}

func (u *Blog) IndexMeta() PageMeta {
	return PageMeta{
		Title:       fmt.Sprintf("Blog | %s", u.author),
		Description: fmt.Sprintf("Articles and notes by %s.", u.author),
		Canonical:   u.siteURL + "/blog",
		OGTitle:     fmt.Sprintf("%s's Blog", u.author),
		OGImage:     u.siteURL + "/og-image.png",
		OGType:      "website",
		SiteName:    fmt.Sprintf("%s's Blog", u.author),
		Author:      u.author,
		Keywords:    []string{"blog", u.author},
	}
}

func ShareLinksFor(title, pageURL, excerpt string) ShareLinks {
	quote := strings.TrimSpace(excerpt)
	if quote == "" {
		quote = `"` + title + `"`
	}
	tweet := `Just read an interesting article: "` + title + `"`
	whatsapp := fmt.Sprintf("Hey! Check out this article I found:\n\n*%s*\n\n%s", title, pageURL)

	return ShareLinks{
		Twitter:  "https://twitter.com/intent/tweet?text=" + encodeComponent(tweet) + "&url=" + encodeComponent(pageURL),
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + encodeComponent(pageURL),
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + encodeComponent(pageURL) + "&quote=" + encodeComponent(quote),
		WhatsApp: "https://wa.me/?text=" + encodeComponent(whatsapp),
	}
}

// encodeComponent percent-encodes s for use inside a query value, with spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
