package settingsinfra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/logx"
	"github.com/Abraxas-365/relaycrm/pkg/settings"
	"github.com/redis/go-redis/v9"
)

const cachePrefix = "relaycrm:settings:"

// CachedRepository is a Redis read-through cache in front of another
// settings repository. Cache failures degrade to the inner repository, never
// to a request failure.
type CachedRepository struct {
	inner settings.Repository
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedRepository wraps inner with a Redis cache.
func NewCachedRepository(inner settings.Repository, client *redis.Client, ttl time.Duration) *CachedRepository {
	return &CachedRepository{inner: inner, redis: client, ttl: ttl}
}

// Get returns the cached setting when present, otherwise reads through and
// populates the cache.
func (r *CachedRepository) Get(ctx context.Context, key string) (*settings.Setting, error) {
	cached, err := r.redis.Get(ctx, cachePrefix+key).Bytes()
	if err == nil {
		var s settings.Setting
		if uerr := json.Unmarshal(cached, &s); uerr == nil {
			return &s, nil
		}
		// A corrupt entry falls through to the source of truth.
		r.redis.Del(ctx, cachePrefix+key)
	} else if err != redis.Nil {
		logx.WithError(err).Warn("settings cache read failed")
	}

	s, err := r.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if data, merr := json.Marshal(s); merr == nil {
		if serr := r.redis.Set(ctx, cachePrefix+key, data, r.ttl).Err(); serr != nil {
			logx.WithError(serr).Warn("settings cache write failed")
		}
	}
	return s, nil
}

// Put writes through to the inner repository and invalidates the cache.
func (r *CachedRepository) Put(ctx context.Context, s settings.Setting) error {
	if err := r.inner.Put(ctx, s); err != nil {
		return err
	}
	if err := r.redis.Del(ctx, cachePrefix+s.Key).Err(); err != nil {
		logx.WithError(err).Warn("settings cache invalidation failed")
	}
	return nil
}

// Delete removes the setting and its cache entry.
func (r *CachedRepository) Delete(ctx context.Context, key string) error {
	if err := r.inner.Delete(ctx, key); err != nil {
		return err
	}
	if err := r.redis.Del(ctx, cachePrefix+key).Err(); err != nil {
		logx.WithError(err).Warn("settings cache invalidation failed")
	}
	return nil
}
