package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

const DefaultRouteTTL = time.Minute

// RedisCache keeps every route search result under its own key with its own
// expiry. An index set lists the keys so a save can drop them all at once.
type RedisCache struct {
	client   redis.Cmdable
	routeTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, routeTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		routeTTL,
	)
}

// NewRedisCacheWithClient falls back to DefaultRouteTTL for a non-positive ttl.
func NewRedisCacheWithClient(client redis.Cmdable, routeTTL time.Duration) *RedisCache {
	if routeTTL <= 0 {
		routeTTL = DefaultRouteTTL
	}
	return &RedisCache{client: client, routeTTL: routeTTL}
}

// GetRoute returns nil, nil on a cache miss.
func (c *RedisCache) GetRoute(ctx context.Context, from, to string) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, routeKey(from, to)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

// SetRoute stores flights for one route. The index outlives every key it
// lists because each write refreshes it with the same ttl.
func (c *RedisCache) SetRoute(ctx context.Context, from, to string, flights []domain.Flight) error {
	if flights == nil {
		flights = []domain.Flight{}
	}
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}

	key := routeKey(from, to)
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, payload, c.routeTTL)
	pipe.SAdd(ctx, routesIndexKey(), key)
	pipe.Expire(ctx, routesIndexKey(), c.routeTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *RedisCache) InvalidateRoutes(ctx context.Context) error {
	keys, err := c.client.SMembers(ctx, routesIndexKey()).Result()
	if err != nil {
		return err
	}
	return c.client.Del(ctx, append(keys, routesIndexKey())...).Err()
}

func routesIndexKey() string {
	return "cache:flights:routes"
}

func routeKey(from, to string) string {
	return "cache:flights:route:" + strings.ToLower(from) + "|" + strings.ToLower(to)
}
