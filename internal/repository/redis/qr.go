package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cafeteria-qr-go/internal/config"
	"cafeteria-qr-go/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "cafeteria:"

// QRImageCache stores rendered QR images in Redis. Redis failures are logged
// and treated as cache misses.
type QRImageCache struct {
	client *goredis.Client
	log    logger.Logger
}

func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func NewQRImageCache(client *goredis.Client, log logger.Logger) *QRImageCache {
	return &QRImageCache{client: client, log: log}
}

func (c *QRImageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.InternalError("redis: qr cache get failed", err, "key", key)
		}
		return nil, false
	}
	return value, true
}

func (c *QRImageCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		c.log.InternalError("redis: qr cache set failed", err, "key", key)
	}
}
