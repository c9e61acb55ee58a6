// Package cache keeps the public approved-listing feed in redis, or in
// process memory when no redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"aubri-backend/internal/domain"
	"aubri-backend/internal/logger"
	"aubri-backend/internal/mapper"
)

const (
	approvedKey   = "listings:approved"
	generationKey = "listings:gen"
)

// ListingCache is a read-through cache for ListApproved. Cache failures are
// logged and treated as misses.
//
// Every Invalidate bumps the generation. A reader takes Generation before it
// queries the store and hands it to SetApproved, which drops the write when an
// Invalidate ran in between, so a feed read before a moderation commit is
// never cached after it.
type ListingCache interface {
	GetApproved(ctx context.Context) ([]domain.Property, bool)
	Generation(ctx context.Context) (int64, error)
	SetApproved(ctx context.Context, gen int64, props []domain.Property)
	Invalidate(ctx context.Context)
}

// setIfCurrent writes the feed only while the generation still matches.
var setIfCurrent = redis.NewScript(`
local gen = redis.call('GET', KEYS[1]) or '0'
if gen ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

type redisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisCache(client redis.Cmdable, ttl time.Duration) ListingCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) GetApproved(ctx context.Context) ([]domain.Property, bool) {
	raw, err := c.client.Get(ctx, approvedKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.ExternalServiceResult("redis", "GET", err, "key", approvedKey)
		}
		return nil, false
	}
	props, err := decode(raw)
	if err != nil {
		logger.Warn("Discarding unreadable cache entry", "key", approvedKey, "error", err)
		return nil, false
	}
	logger.Debug("Cache hit", "key", approvedKey, "count", len(props))
	return props, true
}

func (c *redisCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		logger.ExternalServiceResult("redis", "GET", err, "key", generationKey)
		return 0, err
	}
	return gen, nil
}

func (c *redisCache) SetApproved(ctx context.Context, gen int64, props []domain.Property) {
	raw, err := encode(props)
	if err != nil {
		logger.Warn("Failed to encode listings for cache", "error", err)
		return
	}
	stored, err := setIfCurrent.Run(ctx, c.client,
		[]string{generationKey, approvedKey},
		strconv.FormatInt(gen, 10), raw, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		logger.ExternalServiceResult("redis", "EVALSHA", err, "key", approvedKey)
		return
	}
	if stored == 0 {
		logger.Debug("Skipped stale cache write", "key", approvedKey, "generation", gen)
	}
}

func (c *redisCache) Invalidate(ctx context.Context) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, approvedKey)
		return nil
	})
	if err != nil {
		logger.ExternalServiceResult("redis", "INCR+DEL", err, "key", approvedKey)
	}
}

// Entries are stored in the same snake_case record shape as the store rows.
func encode(props []domain.Property) ([]byte, error) {
	return json.Marshal(mapper.PropertiesFromDomain(props))
}

func decode(raw []byte) ([]domain.Property, error) {
	var recs []mapper.PropertyRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, err
	}
	return mapper.PropertiesToDomain(recs), nil
}

type nopCache struct{}

// Nop disables caching.
func Nop() ListingCache { return nopCache{} }

func (nopCache) GetApproved(context.Context) ([]domain.Property, bool) { return nil, false }
func (nopCache) Generation(context.Context) (int64, error)             { return 0, nil }
func (nopCache) SetApproved(context.Context, int64, []domain.Property) {}
func (nopCache) Invalidate(context.Context)                            {}
