// Package cache adaptadores del caché de simulaciones.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Creditos-api/internal/application/ports"
)

var _ ports.SimulationCache = (*RedisCache)(nil)

// RedisCache caché compartido entre réplicas.
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(addr, password string) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &RedisCache{client: rdb, prefix: "creditos:"}
}

// Ping verifica la conexión al arrancar.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Get cualquier error (incluido redis.Nil) es un fallo de caché.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}

func (r *RedisCache) Close() error { return r.client.Close() }
