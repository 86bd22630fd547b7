// Package repository opens the configured storage backend.
package repository

import (
	"context"
	"fmt"

	"github.com/msomdec/customer-desk/internal/config"
	"github.com/msomdec/customer-desk/internal/domain"
	"github.com/msomdec/customer-desk/internal/repository/postgres"
	"github.com/msomdec/customer-desk/internal/repository/sqlite"
)

// Open connects to the database selected by cfg.DBDriver. The caller runs
// Migrate and owns Close.
func Open(ctx context.Context, cfg config.Config) (domain.Database, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}
}
