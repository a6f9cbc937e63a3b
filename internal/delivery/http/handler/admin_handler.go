package handler

import (
	"strings"

	"portfolio/internal/delivery/http/dto"
	"portfolio/internal/delivery/http/middleware"
	"portfolio/internal/pkg/response"
	"portfolio/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	repos    usecase.ReposUsecase
	previews usecase.LinkPreviewUsecase
}

func NewAdminHandler(repos usecase.ReposUsecase, previews usecase.LinkPreviewUsecase) *AdminHandler {
	return &AdminHandler{repos: repos, previews: previews}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/repos/refresh", h.HandleRefreshRepos)
	r.Delete("/cache/og", h.HandleInvalidatePreviews)
}

func (h *AdminHandler) HandleRefreshRepos(c fiber.Ctx) error {
	res, err := h.repos.Refresh(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, "repositories refreshed", dto.NewReposResponse(res))
}

// HandleInvalidatePreviews drops one cached preview, or all of them when url is absent.
func (h *AdminHandler) HandleInvalidatePreviews(c fiber.Ctx) error {
	rawURL := strings.TrimSpace(c.Query("url"))
	n, err := h.previews.Invalidate(c.Context(), rawURL)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	out := dto.CacheInvalidationResponse{URL: rawURL, Deleted: n}
	if rawURL == "" {
		out.Pattern = usecase.LinkPreviewCachePattern()
	}
	return response.Success(c, fiber.StatusOK, "cache invalidated", out)
}
