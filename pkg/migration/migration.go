// Package migration runs schema migrations registered from
// database/migrations.
//
//	func init() {
//	    migration.Register("20260301000000_create_products_table", &CreateProductsTable{})
//	}
//
// Migrations run in name order; names start with a timestamp so that order
// is chronological. Each `migrate` invocation is one batch and
// `migrate:rollback` reverses the latest batch.
package migration

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/shashiranjanraj/lodge/pkg/logger"
	"gorm.io/gorm"
)

// Migration is one reversible schema change.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "lodge_migrations" }

type registered struct {
	name string
	m    Migration
}

var registry []registered

// Register adds m under name. Registering the same name twice panics.
func Register(name string, m Migration) {
	for _, r := range registry {
		if r.name == name {
			panic("migration: duplicate name " + name)
		}
	}
	registry = append(registry, registered{name: name, m: m})
}

// Names lists registered migrations in run order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for _, r := range sorted() {
		out = append(out, r.name)
	}
	return out
}

func sorted() []registered {
	out := append([]registered(nil), registry...)
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Runner executes and tracks migrations against one database.
type Runner struct {
	db  *gorm.DB
	out io.Writer
}

// New returns a runner that writes progress to out (io.Discard is fine).
func New(db *gorm.DB, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{db: db, out: out}
}

func (r *Runner) ensureTable() error {
	return r.db.AutoMigrate(&record{})
}

func (r *Runner) ran() (map[string]record, error) {
	var rows []record
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	m := make(map[string]record, len(rows))
	for _, row := range rows {
		m[row.Name] = row
	}
	return m, nil
}

// Run applies every pending migration as a new batch and returns how many ran.
func (r *Runner) Run() (int, error) {
	if err := r.ensureTable(); err != nil {
		return 0, fmt.Errorf("migration: ensure table: %w", err)
	}
	done, err := r.ran()
	if err != nil {
		return 0, fmt.Errorf("migration: read history: %w", err)
	}

	var pending []registered
	for _, reg := range sorted() {
		if _, ok := done[reg.name]; !ok {
			pending = append(pending, reg)
		}
	}
	if len(pending) == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return 0, nil
	}

	batch := r.lastBatch() + 1
	for _, reg := range pending {
		fmt.Fprintf(r.out, "Migrating: %s\n", reg.name)
		if err := reg.m.Up(r.db); err != nil {
			return 0, fmt.Errorf("migration: %s up: %w", reg.name, err)
		}
		if err := r.db.Create(&record{Name: reg.name, Batch: batch}).Error; err != nil {
			return 0, fmt.Errorf("migration: record %s: %w", reg.name, err)
		}
		fmt.Fprintf(r.out, "Migrated:  %s\n", reg.name)
	}

	logger.Info("migration: done", "ran", len(pending), "batch", batch)
	return len(pending), nil
}

// Rollback reverses the latest batch and returns how many were rolled back.
func (r *Runner) Rollback() (int, error) {
	if err := r.ensureTable(); err != nil {
		return 0, fmt.Errorf("migration: ensure table: %w", err)
	}

	batch := r.lastBatch()
	if batch == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return 0, nil
	}

	var rows []record
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&rows).Error; err != nil {
		return 0, err
	}

	byName := make(map[string]Migration, len(registry))
	for _, reg := range registry {
		byName[reg.name] = reg.m
	}

	for _, row := range rows {
		m, ok := byName[row.Name]
		if !ok {
			return 0, fmt.Errorf("migration: cannot roll back %s: not registered", row.Name)
		}
		fmt.Fprintf(r.out, "Rolling back: %s\n", row.Name)
		if err := m.Down(r.db); err != nil {
			return 0, fmt.Errorf("migration: %s down: %w", row.Name, err)
		}
		if err := r.db.Delete(&row).Error; err != nil {
			return 0, err
		}
	}

	logger.Info("migration: rolled back", "count", len(rows), "batch", batch)
	return len(rows), nil
}

// Status is one line of `migrate:status`.
type Status struct {
	Name  string
	Ran   bool
	Batch int
}

// Status reports every registered migration and whether it has run.
func (r *Runner) Status() ([]Status, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}
	done, err := r.ran()
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(registry))
	for _, reg := range sorted() {
		row, ok := done[reg.name]
		out = append(out, Status{Name: reg.name, Ran: ok, Batch: row.Batch})
	}
	return out, nil
}

func (r *Runner) lastBatch() int {
	var max struct{ Max int }
	r.db.Model(&record{}).Select("COALESCE(MAX(batch), 0) as max").Scan(&max)
	return max.Max
}
