package handler

import (
	"portfolio/internal/delivery/http/dto"
	"portfolio/internal/delivery/http/middleware"
	"portfolio/internal/pkg/response"
	"portfolio/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ReposHandler struct {
	uc usecase.ReposUsecase
}

func NewReposHandler(uc usecase.ReposUsecase) *ReposHandler {
	return &ReposHandler{uc: uc}
}

func (h *ReposHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/", h.HandleListRepos)
}

func (h *ReposHandler) HandleListRepos(c fiber.Ctx) error {
	res, err := h.uc.List(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewReposResponse(res))
}
