package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/domain"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "home:"
	defaultTTL = time.Hour
)

type HomeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewHomeCache connects to addr and pings it.
func NewHomeCache(ctx context.Context, addr string) (*HomeCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis (ping failed): %w", err)
	}
	return NewHomeCacheWithClient(client, defaultTTL), nil
}

func NewHomeCacheWithClient(client *redis.Client, ttl time.Duration) *HomeCache {
	return &HomeCache{client: client, ttl: ttl}
}

// Get returns (nil, nil) on a miss.
func (c *HomeCache) Get(ctx context.Context, id string) (*domain.Home, error) {
	data, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var home domain.Home
	if err := json.Unmarshal(data, &home); err != nil {
		return nil, fmt.Errorf("decode cached home %s: %w", id, err)
	}
	return &home, nil
}

func (c *HomeCache) Set(ctx context.Context, home *domain.Home) error {
	data, err := json.Marshal(home)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+home.ID, data, c.ttl).Err()
}

func (c *HomeCache) Close() error {
	return c.client.Close()
}
