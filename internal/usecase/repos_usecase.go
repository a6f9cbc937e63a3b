package usecase

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"portfolio/internal/domain/repo"
	"portfolio/internal/pkg/logger"
	"portfolio/internal/pkg/workerpool"
	"portfolio/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Where a repos listing came from.
const (
	ReposSourceCache      = "cache"
	ReposSourceAPI        = "api"
	ReposSourceStaleCache = "stale_cache"
	ReposSourceSnapshot   = "snapshot"
	ReposSourceStatic     = "static"
)

const (
	defaultReposTTL     = 3 * time.Hour
	reposCacheRetention = 7 * 24 * time.Hour
	reposFailureBackoff = 5 * time.Minute
	refreshTimeout      = 30 * time.Second
)

type RepoFetcher interface {
	GetRepository(ctx context.Context, htmlURL string) (repo.Repository, error)
	HasToken() bool
}

type ReposNotifier interface {
	NotifyReposUpdated(totalStars int, display, source string)
}

type ReposResult struct {
	Repositories      []repo.Repository
	TotalStars        int
	TotalStarsDisplay string
	Source            string
	FetchedAt         *time.Time
}

type reposCacheEntry struct {
	Repos     []repo.Repository `json:"repos"`
	FetchedAt time.Time         `json:"fetched_at"`
}

type ReposUsecase interface {
	List(ctx context.Context) (ReposResult, error)
	Current(ctx context.Context) ReposResult
	Refresh(ctx context.Context) (ReposResult, error)
}

type Repos struct {
	seeds     []repo.Repository
	fetcher   RepoFetcher
	cache     Cache
	snapshots repository.RepoSnapshotRepository
	notifier  ReposNotifier
	ttl       time.Duration
	logger    *zap.Logger
	group     singleflight.Group
	now       func() time.Time

	refreshing atomic.Bool

	unauthInterval time.Duration
	authRPS        int
}

// NewReposUsecase builds the star refresh service. fetcher, cache, snapshots and notifier may each be nil.
func NewReposUsecase(
	seeds []repo.Repository,
	fetcher RepoFetcher,
	cache Cache,
	snapshots repository.RepoSnapshotRepository,
	notifier ReposNotifier,
	ttl time.Duration,
	log *zap.Logger,
) *Repos {
	if ttl <= 0 {
		ttl = defaultReposTTL
	}
	cp := make([]repo.Repository, len(seeds))
	copy(cp, seeds)
	for i := range cp {
		if cp[i].DataSource == "" {
			cp[i].DataSource = repo.DataSourceStatic
		}
	}
	return &Repos{
		seeds:          cp,
		fetcher:        fetcher,
		cache:          cache,
		snapshots:      snapshots,
		notifier:       notifier,
		ttl:            ttl,
		logger:         logger.OrNop(log).Named("repos"),
		now:            time.Now,
		unauthInterval: 500 * time.Millisecond,
		authRPS:        5,
	}
}

// Static returns the seed repositories without touching the network.
func (u *Repos) Static() ReposResult {
	return newReposResult(u.seeds, ReposSourceStatic, nil)
}

// List serves the cached listing while it is fresh and refreshes otherwise.
// After a refresh where every fetch failed, fallback data is served until the backoff expires.
func (u *Repos) List(ctx context.Context) (ReposResult, error) {
	if entry, ok := u.cached(ctx); ok && u.now().Sub(entry.FetchedAt) < u.ttl {
		fetched := entry.FetchedAt
		return newReposResult(entry.Repos, ReposSourceCache, &fetched), nil
	}
	if u.backingOff(ctx) {
		return u.fallback(ctx), nil
	}
	return u.Refresh(ctx)
}

// Current never waits on GitHub. A missing or stale cache entry schedules a background refresh
// and the best data at hand is returned meanwhile.
func (u *Repos) Current(ctx context.Context) ReposResult {
	if entry, ok := u.cached(ctx); ok && u.now().Sub(entry.FetchedAt) < u.ttl {
		fetched := entry.FetchedAt
		return newReposResult(entry.Repos, ReposSourceCache, &fetched)
	}
	if !u.backingOff(ctx) {
		u.refreshInBackground(ctx)
	}
	return u.fallback(ctx)
}

func (u *Repos) refreshInBackground(ctx context.Context) {
	if u.fetcher == nil || !u.refreshing.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer u.refreshing.Store(false)
		if _, err := u.Refresh(context.WithoutCancel(ctx)); err != nil {
			u.logger.Warn("background refresh failed", zap.Error(err))
		}
	}()
}

// Refresh always goes to GitHub, ignoring any failure backoff. Concurrent callers share one refresh.
func (u *Repos) Refresh(ctx context.Context) (ReposResult, error) {
	v, err, _ := u.group.Do("refresh", func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return u.refresh(rctx), nil
	})
	if err != nil {
		return ReposResult{}, err
	}
	return v.(ReposResult), nil
}

func (u *Repos) refresh(ctx context.Context) ReposResult {
	if len(u.seeds) == 0 {
		return newReposResult(nil, ReposSourceStatic, nil)
	}

	fresh, failed := u.fetchAll(ctx)
	merged := make([]repo.Repository, len(u.seeds))
	for i, seed := range u.seeds {
		if f, ok := fresh[i]; ok {
			merged[i] = repo.Merge(seed, f)
		} else {
			merged[i] = seed
		}
	}

	if len(fresh) > 0 {
		fetchedAt := u.now().UTC()
		u.store(ctx, merged, fetchedAt)
		u.clearBackoff(ctx)
		res := newReposResult(merged, ReposSourceAPI, &fetchedAt)
		u.logger.Info("repositories refreshed",
			zap.Int("fetched", len(fresh)),
			zap.Int("failed", failed),
			zap.Int("total_stars", res.TotalStars),
		)
		if u.notifier != nil {
			u.notifier.NotifyReposUpdated(res.TotalStars, res.TotalStarsDisplay, res.Source)
		}
		return res
	}

	u.logger.Warn("all repository fetches failed, falling back",
		zap.Int("failed", failed),
		zap.Duration("backoff", reposFailureBackoff),
	)
	u.startBackoff(ctx)
	return u.fallback(ctx)
}

func (u *Repos) startBackoff(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.SetJSON(ctx, reposBackoffKey, u.now().UTC(), reposFailureBackoff); err != nil {
		u.logger.Warn("cache write failed", zap.String("key", reposBackoffKey), zap.Error(err))
	}
}

func (u *Repos) clearBackoff(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, reposBackoffKey); err != nil {
		u.logger.Warn("cache delete failed", zap.String("key", reposBackoffKey), zap.Error(err))
	}
}

func (u *Repos) backingOff(ctx context.Context) bool {
	if u.cache == nil {
		return false
	}
	var since time.Time
	hit, err := u.cache.GetJSON(ctx, reposBackoffKey, &since)
	return err == nil && hit
}

func (u *Repos) fetchAll(ctx context.Context) (map[int]repo.Repository, int) {
	fresh := map[int]repo.Repository{}
	if u.fetcher == nil {
		return fresh, len(u.seeds)
	}

	var pool *workerpool.Pool
	if u.fetcher.HasToken() {
		pool = workerpool.New(4, len(u.seeds))
		pool.SetRateLimit(u.authRPS)
	} else {
		// Unauthenticated calls share a 60/h budget; keep them strictly sequential.
		pool = workerpool.New(1, len(u.seeds))
		pool.SetInterval(u.unauthInterval)
	}
	results := pool.Run(ctx)

	var mu sync.Mutex
	for i, seed := range u.seeds {
		i, htmlURL := i, strings.TrimSpace(seed.HTMLURL)
		if htmlURL == "" {
			continue
		}
		pool.Submit(ctx, strconv.Itoa(i), func(ctx context.Context) error {
			r, err := u.fetcher.GetRepository(ctx, htmlURL)
			if err != nil {
				return err
			}
			mu.Lock()
			fresh[i] = r
			mu.Unlock()
			return nil
		})
	}
	pool.Close()

	failed := len(u.seeds)
	for res := range results {
		if res.Err != nil {
			idx, _ := strconv.Atoi(res.Key)
			u.logger.Warn("repository fetch failed", zap.String("url", u.seeds[idx].HTMLURL), zap.Error(res.Err))
		}
	}
	mu.Lock()
	defer mu.Unlock()
	failed -= len(fresh)
	return fresh, failed
}

func (u *Repos) store(ctx context.Context, merged []repo.Repository, fetchedAt time.Time) {
	if u.cache != nil {
		entry := reposCacheEntry{Repos: merged, FetchedAt: fetchedAt}
		if err := u.cache.SetJSON(ctx, reposCacheKey, entry, reposCacheRetention); err != nil {
			u.logger.Warn("cache write failed", zap.Error(err))
		}
	}
	if u.snapshots != nil {
		if _, err := u.snapshots.UpsertSnapshots(ctx, merged, fetchedAt); err != nil {
			u.logger.Warn("snapshot upsert failed", zap.Error(err))
		}
	}
}

func (u *Repos) cached(ctx context.Context) (reposCacheEntry, bool) {
	if u.cache == nil {
		return reposCacheEntry{}, false
	}
	var entry reposCacheEntry
	hit, err := u.cache.GetJSON(ctx, reposCacheKey, &entry)
	if err != nil {
		u.logger.Warn("cache read failed", zap.Error(err))
		return reposCacheEntry{}, false
	}
	if !hit || len(entry.Repos) == 0 {
		return reposCacheEntry{}, false
	}
	return entry, true
}

// fallback prefers stale cache, then persisted snapshots, then the static seeds.
func (u *Repos) fallback(ctx context.Context) ReposResult {
	if entry, ok := u.cached(ctx); ok {
		fetched := entry.FetchedAt
		return newReposResult(entry.Repos, ReposSourceStaleCache, &fetched)
	}

	if u.snapshots != nil {
		snaps, err := u.snapshots.ListSnapshots(ctx)
		if err != nil {
			u.logger.Warn("snapshot read failed", zap.Error(err))
		} else if len(snaps) > 0 {
			byURL := make(map[string]repository.RepoSnapshot, len(snaps))
			for _, s := range snaps {
				byURL[strings.ToLower(s.Repository.HTMLURL)] = s
			}
			var latest time.Time
			merged := make([]repo.Repository, len(u.seeds))
			matched := 0
			for i, seed := range u.seeds {
				s, ok := byURL[strings.ToLower(seed.HTMLURL)]
				if !ok {
					merged[i] = seed
					continue
				}
				merged[i] = repo.Merge(seed, s.Repository)
				matched++
				if s.FetchedAt.After(latest) {
					latest = s.FetchedAt
				}
			}
			if matched > 0 {
				return newReposResult(merged, ReposSourceSnapshot, &latest)
			}
		}
	}

	return newReposResult(u.seeds, ReposSourceStatic, nil)
}

// RunPeriodicRefresh refreshes every interval until ctx ends. interval <= 0 returns immediately.
func (u *Repos) RunPeriodicRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res, err := u.Refresh(ctx)
			if err != nil {
				u.logger.Warn("periodic refresh failed", zap.Error(err))
				continue
			}
			u.logger.Debug("periodic refresh", zap.String("source", res.Source))
		}
	}
}

func newReposResult(repos []repo.Repository, source string, fetchedAt *time.Time) ReposResult {
	sorted := repo.SortByStars(repos)
	total := repo.TotalStars(sorted)
	return ReposResult{
		Repositories:      sorted,
		TotalStars:        total,
		TotalStarsDisplay: repo.FormatStarCount(total),
		Source:            source,
		FetchedAt:         fetchedAt,
	}
}
