// Package seeders fills a fresh database with reference data.
//
//	func init() {
//	    seeders.Register("categories", SeedCategories)
//	}
//
// Run with `lodge seed`. Seeders must be idempotent.
package seeders

import (
	"fmt"
	"io"
	"sync"

	"gorm.io/gorm"
)

type SeederFunc func(db *gorm.DB) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder. Seeders run in registration order.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// RunAll executes every registered seeder and stops on the first error.
func RunAll(db *gorm.DB, out io.Writer) error {
	mu.Lock()
	current := append([]seederEntry(nil), entries...)
	mu.Unlock()

	if out == nil {
		out = io.Discard
	}
	for _, e := range current {
		fmt.Fprintf(out, "Seeding: %s\n", e.name)
		if err := e.fn(db); err != nil {
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
	}
	return nil
}
