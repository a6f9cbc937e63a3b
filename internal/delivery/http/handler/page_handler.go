package handler

import (
	"bytes"
	"errors"
	"html/template"

	"portfolio/internal/delivery/http/middleware"
	"portfolio/internal/pkg/logger"
	"portfolio/internal/pkg/response"
	"portfolio/internal/usecase"
	"portfolio/internal/web"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

const homeLatestPosts = 3

type PageHandler struct {
	profile usecase.ProfileUsecase
	blog    usecase.BlogUsecase
	repos   usecase.ReposUsecase
	view    *web.Renderer
	logger  *zap.Logger
}

func NewPageHandler(profile usecase.ProfileUsecase, blog usecase.BlogUsecase, repos usecase.ReposUsecase, view *web.Renderer, log *zap.Logger) *PageHandler {
	return &PageHandler{profile: profile, blog: blog, repos: repos, view: view, logger: logger.OrNop(log).Named("pages")}
}

func (h *PageHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/", h.HandleHome)
	r.Get("/blog", h.HandleBlogIndex)
	r.Get("/blog/:slug", h.HandleBlogPost)
	r.Get("/links", h.HandleLinks)
}

func (h *PageHandler) HandleHome(c fiber.Ctx) error {
	bio, err := h.profile.BioHTML()
	if err != nil {
		h.logger.Warn("bio render failed", zap.Error(err))
	}

	posts := h.blog.List()
	if len(posts) > homeLatestPosts {
		posts = posts[:homeLatestPosts]
	}

	return h.render(c, fiber.StatusOK, web.PageHome, web.HomePage{
		Layout:  web.NewLayout(h.profile.HomeMeta()),
		Profile: h.profile.Profile(),
		BioHTML: template.HTML(bio),
		Repos:   h.repos.Current(c.Context()),
		Posts:   posts,
	})
}

func (h *PageHandler) HandleBlogIndex(c fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, web.PageBlogIndex, web.BlogIndexPage{
		Layout: web.NewLayout(h.blog.IndexMeta()),
		Posts:  h.blog.List(),
	})
}

func (h *PageHandler) HandleBlogPost(c fiber.Ctx) error {
	view, err := h.blog.Get(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			return h.HandleNotFound(c)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return h.render(c, fiber.StatusOK, web.PageBlogPost, web.BlogPostPage{
		Layout: web.NewLayout(view.Meta),
		View:   view,
		HTML:   template.HTML(view.HTML),
	})
}

func (h *PageHandler) HandleLinks(c fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, web.PageLinks, web.LinksPage{
		Layout:    web.NewLayout(h.profile.BookmarksMeta()),
		Bookmarks: h.profile.Bookmarks(),
	})
}

// HandleNotFound renders the HTML 404 page. Mounted last, it catches every unmatched route.
func (h *PageHandler) HandleNotFound(c fiber.Ctx) error {
	meta := h.profile.HomeMeta()
	meta.Title = "Page not found | " + meta.Title
	return h.render(c, fiber.StatusNotFound, web.PageNotFound, web.NotFoundPage{
		Layout: web.NewLayout(meta),
		Path:   c.Path(),
	})
}

func (h *PageHandler) render(c fiber.Ctx, status int, page string, data any) error {
	var buf bytes.Buffer
	if err := h.view.Render(&buf, page, data); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
