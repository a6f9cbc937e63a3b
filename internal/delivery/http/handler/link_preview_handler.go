package handler

import (
	"errors"
	"strings"

	"portfolio/internal/delivery/http/middleware"
	"portfolio/internal/infrastructure/ogmeta"
	"portfolio/internal/pkg/response"
	"portfolio/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const HeaderPreviewCache = "X-Preview-Cache"

type LinkPreviewHandler struct {
	uc usecase.LinkPreviewUsecase
}

func NewLinkPreviewHandler(uc usecase.LinkPreviewUsecase) *LinkPreviewHandler {
	return &LinkPreviewHandler{uc: uc}
}

func (h *LinkPreviewHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/og-image", h.HandleOGImage)
}

// HandleOGImage answers with bare metadata JSON on every path except a missing url.
func (h *LinkPreviewHandler) HandleOGImage(c fiber.Ctx) error {
	rawURL := strings.TrimSpace(c.Query("url"))
	if rawURL == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "URL parameter is required", nil, nil)
	}

	res, err := h.uc.Preview(c.Context(), rawURL)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "URL parameter is required", nil, err)
		}
		return response.JSON(c, fiber.StatusInternalServerError, usecase.CacheControlPreviewFailure, ogmeta.Empty(rawURL))
	}

	if res.Cached {
		c.Set(HeaderPreviewCache, "HIT")
	} else {
		c.Set(HeaderPreviewCache, "MISS")
	}
	return response.JSON(c, res.Status, res.CacheControl, res.Metadata)
}
