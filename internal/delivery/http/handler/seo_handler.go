package handler

import (
	"portfolio/internal/delivery/http/middleware"
	"portfolio/internal/pkg/response"
	"portfolio/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SitemapBuilder interface {
	XML() ([]byte, error)
	Robots() string
}

type SEOHandler struct {
	sitemap SitemapBuilder
}

func NewSEOHandler(sitemap SitemapBuilder) *SEOHandler {
	return &SEOHandler{sitemap: sitemap}
}

var _ SitemapBuilder = (*usecase.Sitemap)(nil)

func (h *SEOHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/sitemap.xml", h.HandleSitemap)
	r.Get("/robots.txt", h.HandleRobots)
}

func (h *SEOHandler) HandleSitemap(c fiber.Ctx) error {
	b, err := h.sitemap.XML()
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Status(fiber.StatusOK).Send(b)
}

func (h *SEOHandler) HandleRobots(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(h.sitemap.Robots())
}
