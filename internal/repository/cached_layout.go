package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
)

const (
	layoutKeyPrefix  = "seatmap:layout:"
	defaultLayoutTTL = 5 * time.Minute
)

// LayoutFetcher loads layout documents.
type LayoutFetcher interface {
	FetchLayout(ctx context.Context, eventID string) (model.VenueLayout, error)
}

// LayoutCache is the subset of redis.Cmdable the cache needs.
type LayoutCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetEx(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedLayoutRepo wraps a LayoutFetcher with a Redis read-through cache.
// Layout documents change rarely, overrides change constantly, so only
// layouts are cached.  Redis errors fall through to the wrapped fetcher.
type CachedLayoutRepo struct {
	repo  LayoutFetcher
	cache LayoutCache
	ttl   time.Duration
	log   *zap.Logger
}

// NewCachedLayoutRepo returns a cached fetcher.  A nil cache disables
// caching; a non-positive ttl selects five minutes.
func NewCachedLayoutRepo(repo LayoutFetcher, cache LayoutCache, ttl time.Duration, log *zap.Logger) *CachedLayoutRepo {
	if repo == nil {
		panic("nil layout fetcher passed to NewCachedLayoutRepo")
	}
	if c, ok := cache.(*redis.Client); ok && c == nil {
		cache = nil
	}
	if ttl <= 0 {
		ttl = defaultLayoutTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedLayoutRepo{repo: repo, cache: cache, ttl: ttl, log: log}
}

// FetchLayout returns the cached document or loads and caches it.
func (r *CachedLayoutRepo) FetchLayout(ctx context.Context, eventID string) (model.VenueLayout, error) {
	if r.cache == nil {
		return r.repo.FetchLayout(ctx, eventID)
	}
	key := layoutKeyPrefix + eventID
	if raw, err := r.cache.Get(ctx, key).Bytes(); err == nil && len(raw) > 0 {
		var layout model.VenueLayout
		if err := json.Unmarshal(raw, &layout); err == nil {
			return layout, nil
		}
		r.log.Warn("discarding undecodable cached layout", zap.String("event", eventID))
	} else if err != nil && err != redis.Nil {
		r.log.Warn("layout cache read failed", zap.String("event", eventID), zap.Error(err))
	}

	layout, err := r.repo.FetchLayout(ctx, eventID)
	if err != nil {
		return model.VenueLayout{}, err
	}
	if raw, err := json.Marshal(layout); err == nil {
		if err := r.cache.SetEx(ctx, key, raw, r.ttl).Err(); err != nil {
			r.log.Warn("layout cache write failed", zap.String("event", eventID), zap.Error(err))
		}
	}
	return layout, nil
}

// Invalidate drops the cached document of an event.
func (r *CachedLayoutRepo) Invalidate(ctx context.Context, eventID string) error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Del(ctx, layoutKeyPrefix+eventID).Err()
}
