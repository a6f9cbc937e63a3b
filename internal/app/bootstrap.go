package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"portfolio/internal/config"
	"portfolio/internal/delivery/http/handler"
	"portfolio/internal/delivery/http/middleware"
	"portfolio/internal/delivery/http/routes"
	v1 "portfolio/internal/delivery/http/routes/v1"
	"portfolio/internal/pkg/logger"
	"portfolio/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:      c.Config.App.AppName,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the HTTP app and starts the background workers.
// The returned cleanup stops the workers and releases connections.
func Bootstrap(cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	log = logger.OrNop(log)

	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	app := New(c)

	ctx, cancel := context.WithCancel(context.Background())
	go c.Hub.Run(ctx)
	go c.Repos.RunPeriodicRefresh(ctx, cfg.GitHub.RefreshInterval)

	cleanup := func() error {
		cancel()
		select {
		case <-c.Hub.Done():
		case <-time.After(5 * time.Second):
			log.Warn("websocket hub did not stop in time")
		}
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(log)
	app.Use(errMw.Middleware())

	accessMw := middleware.NewAccessLogMiddleware(log)
	app.Use(accessMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	routes.NewRegistry(routes.Deps{
		Health:      handler.NewHealthHandler(c.HealthChecks()),
		SEO:         handler.NewSEOHandler(c.Sitemap),
		LinkPreview: handler.NewLinkPreviewHandler(c.LinkPreview),
		Pages:       handler.NewPageHandler(c.Profile, c.Blog, c.Repos, c.Views, c.Logger),
		WS:          ws.NewHandler(c.Hub, c.Logger),
		AdminAuth:   middleware.NewAdminAuthMiddleware(c.JWT),
		V1: v1.Handlers{
			Repos:   handler.NewReposHandler(c.Repos),
			Blog:    handler.NewBlogHandler(c.Blog),
			Profile: handler.NewProfileHandler(c.Profile),
			Admin:   handler.NewAdminHandler(c.Repos, c.LinkPreview),
		},
		StaticDir: c.Config.Content.StaticDir,
	}).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
