// Package persistence selects a concrete store backend from configuration.
package persistence

import (
	"context"
	"fmt"

	"shelfcore/internal/infra/persistence/memory"
	"shelfcore/internal/infra/persistence/postgres"
	"shelfcore/internal/infra/persistence/sqlite"
	"shelfcore/pkg/domain"
)

// Driver identifies a persistence backend implementation.
type Driver string

const (
	// DriverMemory is the ephemeral in-memory store (tests, dev).
	DriverMemory Driver = "memory"
	// DriverSQLite is the single-file SQLite store (default).
	DriverSQLite Driver = "sqlite"
	// DriverPostgres is the Postgres store.
	DriverPostgres Driver = "postgres"
)

// Options carries backend selection and connection parameters.
type Options struct {
	Driver     Driver
	SQLitePath string // driver=sqlite
	DSN        string // driver=postgres
}

// Open constructs the store selected by opts. An empty driver defaults to
// SQLite.
func Open(ctx context.Context, opts Options) (domain.PersistentStore, error) {
	driver := opts.Driver
	if driver == "" {
		driver = DriverSQLite
	}
	switch driver {
	case DriverMemory:
		return memory.NewStore(), nil
	case DriverSQLite:
		return sqlite.NewStore(opts.SQLitePath)
	case DriverPostgres:
		return postgres.NewStore(ctx, opts.DSN)
	default:
		return nil, fmt.Errorf("unknown persistence driver %q", driver)
	}
}
