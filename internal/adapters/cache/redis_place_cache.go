package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"eld-trip-service/internal/domain"
)

// RedisPlaceCache is a Redis-backed cache mapping rounded coordinates to
// reverse-geocoded places. Place names are stable, so entries live long.
type RedisPlaceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPlaceCache(client *redis.Client) *RedisPlaceCache {
	return &RedisPlaceCache{
		client: client,
		ttl:    30 * 24 * time.Hour,
	}
}

func placeKey(key string) string { return "place:" + key }

// Get fetches the cached place for a coordinate key.
func (c *RedisPlaceCache) Get(ctx context.Context, key string) (domain.Place, bool, error) {
	if c.client == nil {
		return domain.Place{}, false, errors.New("place cache: redis client is nil")
	}

	raw, err := c.client.Get(ctx, placeKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Place{}, false, nil
	}
	if err != nil {
		return domain.Place{}, false, fmt.Errorf("get place cache %q: %w", key, err)
	}

	var place domain.Place
	if err := json.Unmarshal(raw, &place); err != nil {
		return domain.Place{}, false, fmt.Errorf("get place cache %q: decode: %w", key, err)
	}
	return place, true, nil
}

// Put stores a coordinate -> place mapping.
func (c *RedisPlaceCache) Put(ctx context.Context, key string, place domain.Place) error {
	if c.client == nil {
		return errors.New("place cache: redis client is nil")
	}

	raw, err := json.Marshal(place)
	if err != nil {
		return fmt.Errorf("put place cache %q: encode: %w", key, err)
	}
	if err := c.client.Set(ctx, placeKey(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("put place cache %q: %w", key, err)
	}
	return nil
}
