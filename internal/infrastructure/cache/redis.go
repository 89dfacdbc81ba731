// Package cache implementa el cache de snapshots de KPIs sobre Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis"

	"github.com/jhoicas/Hoteleria-api/internal/application/analytics"
)

var _ analytics.SnapshotCache = (*KpiCache)(nil)

// KpiCache adaptador Redis para analytics.SnapshotCache. Un miss devuelve
// "" sin error; el caso de uso degrada a consulta directa ante cualquier fallo.
type KpiCache struct {
	client *redis.Client
}

// NewKpiCache conecta al Redis configurado y verifica la conexión.
func NewKpiCache(addr, password string, db int) (*KpiCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping().Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &KpiCache{client: client}, nil
}

// Get devuelve el valor cacheado, o "" si la clave no existe.
func (c *KpiCache) Get(_ context.Context, key string) (string, error) {
	val, err := c.client.Get(key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

// Set escribe el valor con el TTL dado.
func (c *KpiCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close cierra la conexión subyacente.
func (c *KpiCache) Close() error {
	return c.client.Close()
}
