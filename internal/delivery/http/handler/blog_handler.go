package handler

import (
	"errors"

	"portfolio/internal/delivery/http/dto"
	"portfolio/internal/delivery/http/middleware"
	"portfolio/internal/pkg/response"
	"portfolio/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type BlogHandler struct {
	uc usecase.BlogUsecase
}

func NewBlogHandler(uc usecase.BlogUsecase) *BlogHandler {
	return &BlogHandler{uc: uc}
}

func (h *BlogHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/", h.HandleListPosts)
	r.Get("/slugs", h.HandleListSlugs)
	r.Get("/:slug", h.HandleGetPost)
}

func (h *BlogHandler) HandleListPosts(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, "success", dto.NewBlogPostSummaries(h.uc.List()))
}

func (h *BlogHandler) HandleListSlugs(c fiber.Ctx) error {
	slugs := h.uc.Slugs()
	if slugs == nil {
		slugs = []string{}
	}
	return response.Success(c, fiber.StatusOK, "success", slugs)
}

func (h *BlogHandler) HandleGetPost(c fiber.Ctx) error {
	view, err := h.uc.Get(c.Context(), c.Params("slug"))
	if err != nil {
		return mapBlogUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewBlogPostResponse(view))
}

func mapBlogUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Blog post not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
