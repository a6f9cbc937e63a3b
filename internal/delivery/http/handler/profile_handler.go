package handler

import (
	"portfolio/internal/delivery/http/dto"
	"portfolio/internal/delivery/http/middleware"
	"portfolio/internal/pkg/response"
	"portfolio/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/", h.HandleGetProfile)
	r.Get("/bio", h.HandleGetBio)
}

func (h *ProfileHandler) HandleGetProfile(c fiber.Ctx) error {
	p := h.uc.Profile()
	if p == nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, "success", p)
}

func (h *ProfileHandler) HandleGetBio(c fiber.Ctx) error {
	html, err := h.uc.BioHTML()
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.BioResponse{HTML: html})
}
