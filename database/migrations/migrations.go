// Package migrations registers lodge's schema. Import it for side effects
// wherever migrations run: the CLI and tests that need a database.
package migrations
