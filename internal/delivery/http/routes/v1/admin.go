package v1

import (
	"portfolio/internal/delivery/http/handler"
	"portfolio/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// RegisterAdmin mounts the admin routes behind bearer auth. A nil or disabled auth middleware answers 404.
func RegisterAdmin(r fiber.Router, adminHandler *handler.AdminHandler, adminAuth *middleware.AdminAuthMiddleware) {
	if r == nil || adminHandler == nil {
		return
	}

	protected := r.Group("/admin", adminAuth.Middleware())
	adminHandler.RegisterRoutes(protected)
}
