package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Cache is satisfied by the redis wrapper and by the in-memory cache.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) (int, error)
}

const (
	linkPreviewKeyPrefix = "og:"
	reposCacheKey        = "github:repos"
	reposBackoffKey      = "github:repos:backoff"
)

func LinkPreviewCacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(rawURL)))
	return linkPreviewKeyPrefix + hex.EncodeToString(sum[:])
}

func LinkPreviewCachePattern() string {
	return linkPreviewKeyPrefix + "*"
}
