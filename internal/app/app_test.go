package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"portfolio/internal/config"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testResume = `name: Jane Doe
summary: Engineer who writes
open_source:
  - html_url: https://github.com/jane/cerberus
    stargazers_count: 10
blogs:
  - slug: hello-world
    title: Hello World
    date: "2025-01-01"
    excerpt: first post
`

func testConfig(t *testing.T, apiBase string) config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "blog"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resume.yaml"), []byte(testResume), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blog", "hello-world.md"), []byte("# Hi\n\nSome words here."), 0o644))

	return config.Config{
		App:     config.AppConfig{AppName: "portfolio", Environment: "test", HTTPPort: "0", SiteURL: "https://jane.dev"},
		Content: config.ContentConfig{ContentDir: dir, StaticDir: t.TempDir(), MigrationsDir: filepath.Join(dir, "none")},
		GitHub:  config.GitHubConfig{APIBase: apiBase, CacheTTL: time.Hour},
		Preview: config.PreviewConfig{FetchTimeout: time.Second},
		Redis:   config.RedisConfig{Host: "127.0.0.1", Port: "1"},
	}
}

func fakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/jane/cerberus" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":7,"name":"cerberus","html_url":"https://github.com/jane/cerberus","stargazers_count":1500,"forks_count":3,"topics":["go"]}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBootstrap_ServesSite(t *testing.T) {
	gh := fakeGitHub(t)
	a, cleanup, err := Bootstrap(testConfig(t, gh.URL), nil)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, cleanup()) })

	assert.False(t, a.Container.Redis.Available())
	assert.Nil(t, a.Container.DB)

	get := func(target string) (int, []byte) {
		resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, target, nil), testTimeout())
		require.NoError(t, err)
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, b
	}

	code, body := get("/api/v1/repos")
	require.Equal(t, http.StatusOK, code, string(body))
	var env struct {
		Data struct {
			TotalStars        int    `json:"total_stars"`
			TotalStarsDisplay string `json:"total_stars_display"`
			Source            string `json:"source"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	assert.Equal(t, 1500, env.Data.TotalStars)
	assert.Equal(t, "1.5k", env.Data.TotalStarsDisplay)
	assert.Equal(t, "api", env.Data.Source)

	code, body = get("/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "~ 1.5k stars")

	code, body = get("/blog/hello-world")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `<h1 id="hi">Hi</h1>`)

	code, _ = get("/blog/unknown")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = get("/api/v1/admin/repos/refresh")
	assert.Equal(t, http.StatusNotFound, code)

	code, body = get("/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `"redis":"unavailable"`)
}

func TestBootstrap_MissingContent(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.Content.ContentDir = filepath.Join(t.TempDir(), "absent")
	_, _, err := Bootstrap(cfg, nil)
	assert.Error(t, err)
}

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(" :9000 ")
	require.NoError(t, err)
	assert.Equal(t, ":9000", addr)

	_, err = ListenAddr("  ")
	assert.Error(t, err)
}

func testTimeout() fiber.TestConfig {
	return fiber.TestConfig{Timeout: 5 * time.Second}
}
