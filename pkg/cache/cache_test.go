package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lodge/pkg/cache"
)

type category struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func TestMemoryRoundTrip(t *testing.T) {
	cache.Use(cache.NewMemoryStore())
	assert.Equal(t, "memory", cache.Driver())

	require.NoError(t, cache.Set("cats", []category{{"Shoes", "shoes"}}, time.Minute))

	var got []category
	require.True(t, cache.Get("cats", &got))
	assert.Equal(t, []category{{"Shoes", "shoes"}}, got)

	require.NoError(t, cache.Forget("cats"))
	assert.False(t, cache.Get("cats", &got))
}

func TestMemoryExpiry(t *testing.T) {
	cache.Use(cache.NewMemoryStore())
	require.NoError(t, cache.Set("short", "v", 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	var v string
	assert.False(t, cache.Get("short", &v))
}
