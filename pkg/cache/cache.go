// Package cache stores JSON-encoded values in Redis, or in process memory
// when Redis is not reachable.
//
//	cache.Set("catalog:categories", cats, 10*time.Minute)
//	var cats []models.Category
//	if cache.Get("catalog:categories", &cats) { ... }
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shashiranjanraj/lodge/config"
	"github.com/shashiranjanraj/lodge/pkg/logger"
	"github.com/shashiranjanraj/lodge/pkg/metrics"
)

// Store is a byte-level key/value backend.
type Store interface {
	Name() string
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

var store Store = NewMemoryStore()

// Connect selects Redis when CACHE_DRIVER is "redis" (the default) and the
// server answers, falling back to memory otherwise.
func Connect() error {
	if config.Get("CACHE_DRIVER", "redis") != "redis" {
		Use(NewMemoryStore())
		return nil
	}

	rs, err := NewRedisStore(config.RedisAddr(), config.RedisPassword())
	if err != nil {
		logger.Warn("cache: redis unavailable, using memory store", "error", err)
		Use(NewMemoryStore())
		return err
	}
	Use(rs)
	return nil
}

// Use replaces the active store.
func Use(s Store) { store = s }

// Driver names the active store.
func Driver() string { return store.Name() }

// Get decodes the value at key into dest and reports whether it was found.
func Get(key string, dest interface{}) bool {
	raw, ok, err := store.Get(context.Background(), key)
	if err != nil || !ok {
		metrics.CacheMisses.WithLabelValues(store.Name()).Inc()
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		metrics.CacheMisses.WithLabelValues(store.Name()).Inc()
		return false
	}
	metrics.CacheHits.WithLabelValues(store.Name()).Inc()
	return true
}

// Set stores value under key for ttl.
func Set(key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return store.Set(context.Background(), key, data, ttl)
}

// Del removes keys.
func Del(keys ...string) error {
	return store.Del(context.Background(), keys...)
}

// Forget removes a single key.
func Forget(key string) error { return Del(key) }
