package qr

import (
	"context"
	"time"
)

// Cache stores rendered images. Implementations handle their own failures;
// a miss is always a safe answer.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]byte, bool) {
	return nil, false
}

func (noopCache) Set(context.Context, string, []byte, time.Duration) {}
