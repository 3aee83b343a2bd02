package cache

import (
	"context"
	"time"
)

// NoopCache nunca guarda nada; usado sem REDIS_URL.
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, ErrMiss
}

func (NoopCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}
