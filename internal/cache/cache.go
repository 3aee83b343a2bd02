package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var ErrMiss = errors.New("cache: chave ausente")

// Cache guarda blobs JSON de visões derivadas.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key monta "betterhouse:<versão>:<partes>"; a versão do snapshot
// invalida as entradas antigas.
func Key(version string, parts ...string) string {
	return "betterhouse:" + version + ":" + strings.Join(parts, ":")
}

// Remember devolve o valor em cache ou calcula, grava e devolve.
// Falhas do cache não impedem o cálculo. ttl <= 0 desliga o cache,
// nunca grava chave sem expiração.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	if ttl <= 0 {
		c = nil
	}
	if c != nil {
		if data, err := c.Get(ctx, key); err == nil {
			var cached T
			if json.Unmarshal(data, &cached) == nil {
				return cached, nil
			}
		}
	}

	value, err := compute()
	if err != nil {
		return value, err
	}

	if c != nil {
		if payload, err := json.Marshal(value); err == nil {
			_ = c.Set(ctx, key, payload, ttl)
		}
	}
	return value, nil
}
