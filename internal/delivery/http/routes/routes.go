package routes

import (
	"path/filepath"
	"strings"

	"portfolio/internal/delivery/http/handler"
	"portfolio/internal/delivery/http/middleware"
	v1 "portfolio/internal/delivery/http/routes/v1"
	"portfolio/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"
)

type Deps struct {
	Health      *handler.HealthHandler
	SEO         *handler.SEOHandler
	LinkPreview *handler.LinkPreviewHandler
	Pages       *handler.PageHandler
	WS          *ws.Handler
	AdminAuth   *middleware.AdminAuthMiddleware
	V1          v1.Handlers
	StaticDir   string
}

type Registry struct {
	deps Deps
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerWS(app)
	r.registerStatic(app)
	r.registerPages(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.deps.Health != nil {
		r.deps.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	if r.deps.LinkPreview != nil {
		r.deps.LinkPreview.RegisterRoutes(api)
	}
	RegisterV1(api.Group("/v1"), r.deps.V1, r.deps.AdminAuth)

	// Unmatched API paths answer with the JSON envelope, not the HTML 404 page.
	api.Use(func(c fiber.Ctx) error {
		return middleware.NewAppError(fiber.StatusNotFound, "", nil, nil)
	})
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.deps.WS != nil {
		app.Get("/ws/repos", r.deps.WS.HandleReposWS)
	}
}

func (r *Registry) registerStatic(app *fiber.App) {
	dir := strings.TrimSpace(r.deps.StaticDir)
	if dir == "" {
		return
	}
	app.Use("/static", static.New(dir))

	for _, name := range []string{"favicon.ico", "og-image.png"} {
		file := filepath.Join(dir, name)
		app.Get("/"+name, func(c fiber.Ctx) error {
			return c.SendFile(file)
		})
	}
}

func (r *Registry) registerPages(app *fiber.App) {
	if r.deps.SEO != nil {
		r.deps.SEO.RegisterRoutes(app)
	}
	if r.deps.Pages == nil {
		return
	}
	r.deps.Pages.RegisterRoutes(app)
	app.Use(r.deps.Pages.HandleNotFound)
}
