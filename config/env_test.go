package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/lodge/config"
)

func TestSetOverridesDefaults(t *testing.T) {
	config.Set("LODGE_TEST_KEY", "pinned")
	assert.Equal(t, "pinned", config.Get("LODGE_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", config.Get("LODGE_TEST_MISSING", "fallback"))
}

func TestTypedReaders(t *testing.T) {
	config.Set("LODGE_TEST_INT", "42")
	config.Set("LODGE_TEST_BAD_INT", "forty")
	config.Set("LODGE_TEST_DURATION", "250ms")
	config.Set("LODGE_TEST_LIST", " a@x.io, ,b@x.io ")

	assert.Equal(t, 42, config.Int("LODGE_TEST_INT", 1))
	assert.Equal(t, 1, config.Int("LODGE_TEST_BAD_INT", 1))
	assert.Equal(t, 250*time.Millisecond, config.Duration("LODGE_TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, config.Duration("LODGE_TEST_UNSET_DURATION", time.Second))
	assert.Equal(t, []string{"a@x.io", "b@x.io"}, config.List("LODGE_TEST_LIST"))
}

func TestDepositAddressDefaults(t *testing.T) {
	assert.Equal(t, "bc1qjutzcd5fmrtrnkqtzc5dzaurhg5y5tyhelhn0z", config.DepositAddress("btc"))
	assert.Empty(t, config.DepositAddress("doge"))
}

func TestDatabaseDriverFallsBackToSQLite(t *testing.T) {
	config.Set("DB_DRIVER", "oracle")
	assert.Equal(t, "sqlite", config.DatabaseDriver())
	config.Set("DB_DRIVER", "postgres")
	assert.Equal(t, "postgres", config.DatabaseDriver())
	config.Set("DB_DRIVER", "sqlite")
}
