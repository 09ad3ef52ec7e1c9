package content

import (
	"log"
	"time"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"
)

// ListCache is an interface for components that cache marshaled list pages.
// A cache miss and a cache failure look the same to callers; the backend is
// always there to fall back on.
type ListCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Del(keys ...string)
	// Keys enumerates every key currently held by this cache.
	Keys() []string
}

type redisListCache struct {
	redisClient *redis.Client
	prefix      string
	ttl         time.Duration
}

// NewRedisListCache returns a Redis-based implementation of the ListCache
// interface scoped to the given key prefix.
func NewRedisListCache(
	redisClient *redis.Client,
	prefix string,
	ttl time.Duration,
) ListCache {
	return &redisListCache{
		redisClient: redisClient,
		prefix:      prefix,
		ttl:         ttl,
	}
}

func (r *redisListCache) Get(key string) ([]byte, bool) {
	value, err := r.redisClient.Get(r.prefix + key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Println(errors.Wrap(err, "error reading list cache"))
		return nil, false
	}
	return value, true
}

func (r *redisListCache) Set(key string, value []byte) {
	if err := r.redisClient.Set(
		r.prefix+key,
		value,
		r.ttl,
	).Err(); err != nil {
		log.Println(errors.Wrap(err, "error writing list cache"))
	}
}

func (r *redisListCache) Del(keys ...string) {
	if len(keys) == 0 {
		return
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = r.prefix + key
	}
	if err := r.redisClient.Del(prefixed...).Err(); err != nil {
		log.Println(errors.Wrap(err, "error invalidating list cache"))
	}
}

func (r *redisListCache) Keys() []string {
	keys, err := r.redisClient.Keys(r.prefix + "*").Result()
	if err != nil {
		log.Println(errors.Wrap(err, "error enumerating list cache keys"))
		return nil
	}
	stripped := make([]string, len(keys))
	for i, key := range keys {
		stripped[i] = key[len(r.prefix):]
	}
	return stripped
}
