package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Content  ContentConfig
	GitHub   GitHubConfig
	Preview  PreviewConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Admin    AdminConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	SiteURL     string
	LogLevel    string
}

type ContentConfig struct {
	ContentDir    string
	StaticDir     string
	MigrationsDir string
}

type GitHubConfig struct {
	Token           string
	APIBase         string
	CacheTTL        time.Duration
	RefreshInterval time.Duration
}

type PreviewConfig struct {
	FetchTimeout time.Duration
	Headless     bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout time.Duration
	PoolMaxConns   int32
}

// Enabled reports whether a Postgres host was configured. The database is optional.
func (c DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(c.DBHost) != ""
}

type AdminConfig struct {
	JWTSecret string
}

func (c AdminConfig) Enabled() bool {
	return strings.TrimSpace(c.JWTSecret) != ""
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	optBool := func(key string) bool {
		raw := opt(key)
		if raw == "" {
			return false
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return false
		}
		return b
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		SiteURL:     strings.TrimRight(opt("SITE_URL"), "/"),
		LogLevel:    optDefault("LOG_LEVEL", "info"),
	}

	cfg.Content = ContentConfig{
		ContentDir:    optDefault("CONTENT_DIR", "content"),
		StaticDir:     optDefault("STATIC_DIR", "public"),
		MigrationsDir: optDefault("MIGRATIONS_DIR", "migrations"),
	}

	token := opt("GITHUB_TOKEN")
	if token == "" {
		token = opt("NEXT_PUBLIC_GITHUB_TOKEN")
	}
	cfg.GitHub = GitHubConfig{
		Token:           token,
		APIBase:         strings.TrimRight(optDefault("GITHUB_API_BASE", "https://api.github.com"), "/"),
		CacheTTL:        optDuration("GITHUB_CACHE_TTL", 3*time.Hour),
		RefreshInterval: optDuration("GITHUB_REFRESH_INTERVAL", 0),
	}

	cfg.Preview = PreviewConfig{
		FetchTimeout: optDuration("OG_FETCH_TIMEOUT", 8*time.Second),
		Headless:     optBool("OG_HEADLESS"),
	}

	cfg.Redis = RedisConfig{
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST"),
		DBPort:         optDefault("DB_PORT", "5432"),
		DBName:         opt("DB_NAME"),
		DBUser:         opt("DB_USER"),
		DBPassword:     opt("DB_PASSWORD"),
		DBSSLMode:      optDefault("DB_SSL_MODE", "disable"),
		ConnectTimeout: optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:   4,
	}

	cfg.Admin = AdminConfig{
		JWTSecret: opt("ADMIN_JWT_SECRET"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// IsDevelopment is true for APP_ENV values "development", "dev" and "local".
func (c AppConfig) IsDevelopment() bool {
	switch strings.ToLower(c.Environment) {
	case "development", "dev", "local":
		return true
	default:
		return false
	}
}
