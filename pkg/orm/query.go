// Package orm is a thin chainable wrapper over gorm that adds cache-through
// reads. Repositories hold a *gorm.DB and start queries with orm.On(db).
package orm

import (
	"context"
	"time"

	"github.com/shashiranjanraj/lodge/pkg/cache"
	"github.com/shashiranjanraj/lodge/pkg/database"
	"gorm.io/gorm"
)

type Query struct {
	db *gorm.DB
}

// DB starts a query on the global connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// On starts a query on db.
func On(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) WithContext(ctx context.Context) *Query {
	return &Query{db: q.db.WithContext(ctx)}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Select(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Select(query, args...)}
}

func (q *Query) Joins(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Joins(query, args...)}
}

func (q *Query) Preload(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(query, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

// Cache serves dest from the cache under key, falling back to the query
// and storing its result for ttl. A failing cache write is not an error.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	_ = cache.Set(key, dest, ttl)
	return nil
}

// Gorm exposes the underlying statement for anything the wrapper lacks.
func (q *Query) Gorm() *gorm.DB { return q.db }
