package dto

import (
	"portfolio/internal/domain/blog"
	"portfolio/internal/usecase"
)

type BlogPostSummary struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Excerpt     string   `json:"excerpt"`
	ExternalURL *string  `json:"external_url"`
	Tags        []string `json:"tags"`
	ReadingTime string   `json:"reading_time"`
	OGImage     *string  `json:"og_image"`
}

type BlogPostResponse struct {
	BlogPostSummary
	Content          *string            `json:"content"`
	HTML             *string            `json:"html"`
	ContentAvailable bool               `json:"content_available"`
	Meta             usecase.PageMeta   `json:"meta"`
	Share            usecase.ShareLinks `json:"share"`
}

func NewBlogPostSummary(p blog.Post) BlogPostSummary {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return BlogPostSummary{
		Slug:        p.Slug,
		Title:       p.Title,
		Date:        p.Date,
		Excerpt:     p.Excerpt,
		ExternalURL: optional(p.ExternalURL),
		Tags:        tags,
		ReadingTime: p.ReadingTime,
		OGImage:     optional(p.OGImage),
	}
}

func NewBlogPostSummaries(posts []blog.Post) []BlogPostSummary {
	out := make([]BlogPostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewBlogPostSummary(p))
	}
	return out
}

func NewBlogPostResponse(v usecase.BlogPostView) BlogPostResponse {
	out := BlogPostResponse{
		BlogPostSummary:  NewBlogPostSummary(v.Post),
		ContentAvailable: v.ContentAvailable,
		Meta:             v.Meta,
		Share:            v.Share,
	}
	if v.ContentAvailable {
		out.Content = optional(v.Post.Content)
		out.HTML = optional(v.HTML)
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
