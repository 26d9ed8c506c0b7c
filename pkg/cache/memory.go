package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type memoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore returns an in-process store with TTL expiry.
func NewMemoryStore() Store {
	return &memoryStore{c: gocache.New(gocache.NoExpiration, 5*time.Minute)}
}

func (s *memoryStore) Name() string { return "memory" }

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	return b, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	s.c.Set(key, append([]byte(nil), val...), ttl)
	return nil
}

func (s *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		s.c.Delete(k)
	}
	return nil
}
