// Package testkit holds helpers shared by lodge's tests: a migrated
// in-memory database, a mock transport for outbound HTTP and a request
// helper that decodes the JSON envelope.
//
//	db := testkit.DB(t)
//	mt := testkit.NewMockTransport().
//	    On("POST", "https://auth.example/auth/v1/token", 200, `{"access_token":"x"}`)
//	mt.Install(t)
//	res := testkit.Call(t, handler, "GET", "/api/products", nil)
package testkit

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/lodge/pkg/cache"
	"github.com/shashiranjanraj/lodge/pkg/database"
	"github.com/shashiranjanraj/lodge/pkg/migration"
)

var dbSeq atomic.Int64

// DB opens a private in-memory SQLite database and runs every registered
// migration on it, with a fresh in-memory cache. Callers blank-import database/migrations to fill the
// registry.
func DB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, dbSeq.Add(1))

	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)

	// One connection keeps the shared-cache database alive and serialises
	// writers the way a real transaction would.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	_, err = migration.New(db, nil).Run()
	require.NoError(t, err)

	// Cached rows from another test's database must not leak in.
	cache.Use(cache.NewMemoryStore())
	return db
}
