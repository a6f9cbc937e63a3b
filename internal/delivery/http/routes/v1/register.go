package v1

import (
	"portfolio/internal/delivery/http/handler"
	"portfolio/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Repos   *handler.ReposHandler
	Blog    *handler.BlogHandler
	Profile *handler.ProfileHandler
	Admin   *handler.AdminHandler
}

func Register(r fiber.Router, h Handlers, adminAuth *middleware.AdminAuthMiddleware) {
	if r == nil {
		return
	}

	if h.Repos != nil {
		h.Repos.RegisterRoutes(r.Group("/repos"))
	}
	if h.Blog != nil {
		h.Blog.RegisterRoutes(r.Group("/blog"))
	}
	if h.Profile != nil {
		h.Profile.RegisterRoutes(r.Group("/profile"))
	}

	RegisterAdmin(r, h.Admin, adminAuth)
}
