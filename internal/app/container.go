package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"portfolio/internal/config"
	"portfolio/internal/content"
	"portfolio/internal/database"
	"portfolio/internal/database/migration"
	dbpostgres "portfolio/internal/database/postgres"
	"portfolio/internal/delivery/http/handler"
	"portfolio/internal/domain/resume"
	"portfolio/internal/infrastructure/cache"
	"portfolio/internal/infrastructure/github"
	"portfolio/internal/infrastructure/ogmeta"
	"portfolio/internal/markdown"
	"portfolio/internal/pkg/jwt"
	"portfolio/internal/pkg/logger"
	"portfolio/internal/repository"
	"portfolio/internal/usecase"
	"portfolio/internal/web"
	"portfolio/internal/ws"
	"portfolio/migrations"

	"go.uber.org/zap"
)

type Container struct {
	Config config.Config
	Logger *zap.Logger

	Resume *resume.Resume
	Redis  *cache.Redis
	Cache  usecase.Cache
	DB     database.DB
	Hub    *ws.Hub
	JWT    jwt.Service
	Views  *web.Renderer

	LinkPreview *usecase.LinkPreviewer
	Repos       *usecase.Repos
	Blog        *usecase.Blog
	Profile     *usecase.Profile
	Sitemap     *usecase.Sitemap
}

// NewContainer loads content and wires every dependency. Only unreadable content is fatal:
// redis and postgres degrade to in-memory caching and no snapshots.
func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	log = logger.OrNop(log)

	res, err := content.LoadResume(cfg.Content.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	views, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: log, Resume: res, Views: views}

	c.Redis = cache.NewRedis(cfg.Redis, log)
	if c.Redis.Available() {
		c.Cache = c.Redis
	} else {
		log.Info("using in-process cache")
		c.Cache = cache.NewMemory()
	}

	var snapshots repository.RepoSnapshotRepository
	if cfg.Database.Enabled() {
		db, err := connectDatabase(cfg, log)
		if err != nil {
			log.Warn("database unavailable, snapshots disabled", zap.Error(err))
		} else {
			c.DB = db
			snapshots = repository.NewPostgresRepoSnapshotRepository(db)
		}
	}

	if cfg.Admin.Enabled() {
		c.JWT = jwt.NewHMACService(cfg.Admin.JWTSecret, cfg.App.AppName)
	}

	c.Hub = ws.NewHub(log)
	renderer := markdown.NewRenderer()
	store := content.NewMarkdownStore(cfg.Content.ContentDir)

	var headless usecase.PageRenderer
	if cfg.Preview.Headless {
		headless = ogmeta.NewHeadless(0)
	}
	c.LinkPreview = usecase.NewLinkPreviewUsecase(ogmeta.NewFetcher(cfg.Preview.FetchTimeout), headless, c.Cache, log)

	c.Repos = usecase.NewReposUsecase(
		res.Seeds(),
		github.NewClient(cfg.GitHub.APIBase, cfg.GitHub.Token),
		c.Cache,
		snapshots,
		c.Hub,
		cfg.GitHub.CacheTTL,
		log,
	)
	c.Blog = usecase.NewBlogUsecase(res.Blogs, res.Name, cfg.App.SiteURL, store, renderer, log)
	c.Profile = usecase.NewProfileUsecase(res, cfg.App.SiteURL, renderer)
	c.Sitemap = usecase.NewSitemapUsecase(cfg.App.SiteURL, c.Blog).WithBookmarks(c.Profile)

	return c, nil
}

func connectDatabase(cfg config.Config, log *zap.Logger) (database.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	applied, err := MigrationRunner(cfg, log).Run(ctx, db.SQLDB())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if applied > 0 {
		log.Info("migrations applied", zap.Int("count", applied))
	}
	return db, nil
}

// MigrationRunner reads MIGRATIONS_DIR when it exists on disk and the embedded migrations otherwise.
func MigrationRunner(cfg config.Config, log *zap.Logger) migration.Runner {
	dir := cfg.Content.MigrationsDir
	if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
		return migration.Runner{Dir: dir, Logger: log}
	}
	return migration.Runner{FS: migrations.Files, Logger: log}
}

// HealthChecks probes redis, and postgres when it is configured.
func (c *Container) HealthChecks() map[string]handler.HealthCheck {
	checks := map[string]handler.HealthCheck{"redis": c.Redis.Ping}
	if c.Config.Database.Enabled() {
		checks["database"] = func(ctx context.Context) error {
			if c.DB == nil {
				return errors.New("not connected")
			}
			return c.DB.Ping(ctx)
		}
	}
	return checks
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	return errors.Join(errs...)
}
