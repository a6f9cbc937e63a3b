package usecase

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"portfolio/internal/infrastructure/ogmeta"
	"portfolio/internal/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cache-Control tiers for preview outcomes. The cache TTL of each tier equals its s-maxage.
const (
	CacheControlPreviewOK       = "public, s-maxage=86400, stale-while-revalidate=604800"
	CacheControlPreviewUpstream = "public, s-maxage=3600, stale-while-revalidate=86400"
	CacheControlPreviewFailure  = "public, s-maxage=600, stale-while-revalidate=3600"
)

var previewTTL = map[string]time.Duration{
	CacheControlPreviewOK:       24 * time.Hour,
	CacheControlPreviewUpstream: time.Hour,
	CacheControlPreviewFailure:  10 * time.Minute,
}

type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (ogmeta.Page, error)
}

type PageRenderer interface {
	Render(ctx context.Context, rawURL string) (string, error)
}

// LinkPreview is the full HTTP outcome of a preview, so cached entries can be replayed verbatim.
type LinkPreview struct {
	Status       int             `json:"status"`
	CacheControl string          `json:"cache_control"`
	Metadata     ogmeta.Metadata `json:"metadata"`
	Cached       bool            `json:"-"`
}

type LinkPreviewUsecase interface {
	Preview(ctx context.Context, rawURL string) (LinkPreview, error)
	Invalidate(ctx context.Context, rawURL string) (int, error)
}

type LinkPreviewer struct {
	fetcher  PageFetcher
	renderer PageRenderer
	cache    Cache
	group    singleflight.Group
	logger   *zap.Logger
}

// NewLinkPreviewUsecase wires the preview pipeline. renderer and cache may be nil.
func NewLinkPreviewUsecase(fetcher PageFetcher, renderer PageRenderer, cache Cache, log *zap.Logger) *LinkPreviewer {
	return &LinkPreviewer{
		fetcher:  fetcher,
		renderer: renderer,
		cache:    cache,
		logger:   logger.OrNop(log).Named("linkpreview"),
	}
}

func (u *LinkPreviewer) Preview(ctx context.Context, rawURL string) (LinkPreview, error) {
	if strings.TrimSpace(rawURL) == "" {
		return LinkPreview{}, ErrInvalidInput
	}
	key := LinkPreviewCacheKey(rawURL)

	if u.cache != nil {
		var cached LinkPreview
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		if hit && err == nil {
			cached.Metadata.URL = rawURL
			cached.Cached = true
			return cached, nil
		}
	}

	// One upstream fetch per URL; a caller going away must not cancel it for the others.
	v, _, _ := u.group.Do(key, func() (any, error) {
		res := u.fetch(context.WithoutCancel(ctx), rawURL)
		if u.cache != nil {
			if err := u.cache.SetJSON(context.WithoutCancel(ctx), key, res, previewTTL[res.CacheControl]); err != nil {
				u.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return res, nil
	})
	res := v.(LinkPreview)
	res.Metadata.URL = rawURL
	return res, nil
}

func (u *LinkPreviewer) fetch(ctx context.Context, rawURL string) LinkPreview {
	if u.fetcher == nil {
		return failedPreview(rawURL, errors.New("no fetcher configured"))
	}

	page, err := u.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		u.logger.Warn("fetch failed", zap.String("url", rawURL), zap.Bool("timeout", ogmeta.IsTimeout(err)), zap.Error(err))
		return failedPreview(rawURL, err)
	}
	if !page.OK() {
		u.logger.Info("upstream not ok", zap.String("url", rawURL), zap.Int("status", page.StatusCode))
		return LinkPreview{Status: http.StatusOK, CacheControl: CacheControlPreviewUpstream, Metadata: ogmeta.Empty(rawURL)}
	}
	if !page.IsHTML() {
		u.logger.Info("non-html content", zap.String("url", rawURL), zap.String("content_type", page.ContentType))
		return LinkPreview{Status: http.StatusOK, CacheControl: CacheControlPreviewUpstream, Metadata: ogmeta.Empty(rawURL)}
	}

	meta, err := ogmeta.ExtractHTML(bytes.NewReader(page.Body), rawURL)
	if err != nil {
		u.logger.Warn("parse failed", zap.String("url", rawURL), zap.Error(err))
		return failedPreview(rawURL, err)
	}

	if !meta.HasTitle() && u.renderer != nil {
		if rendered, ok := u.render(ctx, rawURL); ok {
			meta = rendered
		}
	}

	return LinkPreview{Status: http.StatusOK, CacheControl: CacheControlPreviewOK, Metadata: meta}
}

func (u *LinkPreviewer) render(ctx context.Context, rawURL string) (ogmeta.Metadata, bool) {
	html, err := u.renderer.Render(ctx, rawURL)
	if err != nil {
		u.logger.Warn("headless render failed", zap.String("url", rawURL), zap.Error(err))
		return ogmeta.Metadata{}, false
	}
	meta, err := ogmeta.ExtractHTML(strings.NewReader(html), rawURL)
	if err != nil || !meta.HasTitle() {
		return ogmeta.Metadata{}, false
	}
	u.logger.Debug("headless render recovered title", zap.String("url", rawURL))
	return meta, true
}

func failedPreview(rawURL string, err error) LinkPreview {
	status := http.StatusInternalServerError
	if ogmeta.IsTimeout(err) {
		status = http.StatusGatewayTimeout
	}
	return LinkPreview{Status: status, CacheControl: CacheControlPreviewFailure, Metadata: ogmeta.Empty(rawURL)}
}

// Invalidate drops the cached preview of rawURL, or every cached preview when rawURL is blank.
func (u *LinkPreviewer) Invalidate(ctx context.Context, rawURL string) (int, error) {
	if u.cache == nil {
		return 0, nil
	}
	if strings.TrimSpace(rawURL) == "" {
		return u.cache.DeleteByPattern(ctx, LinkPreviewCachePattern())
	}
	if err := u.cache.Delete(ctx, LinkPreviewCacheKey(rawURL)); err != nil {
		return 0, err
	}
	return 1, nil
}
