package main

import (
	"context"
	"database/sql"
	"fmt"

	"bookquery/internal/config"
	"bookquery/internal/database"
)

// CLI is the migrate command line.
type CLI struct {
	Dir    string `help:"Directory holding goose SQL migrations" env:"MIGRATIONS_DIR" default:"db/migrations"`
	Driver string `help:"Database driver (pgx, postgres, sqlite); defaults to DB_DRIVER"`
	DSN    string `help:"Database DSN; defaults to the one assembled from DB_* variables"`

	Up     MigrateCmd `cmd:"" default:"1" help:"Apply all pending migrations"`
	Down   MigrateCmd `cmd:"" help:"Roll back the latest migration"`
	Status MigrateCmd `cmd:"" help:"Print the status of every migration"`
	Create CreateCmd  `cmd:"" help:"Create a new SQL migration"`
}

// connect resolves driver and DSN from flags first, then from the environment config.
func (c *CLI) connect(ctx context.Context) (*sql.DB, string, error) {
	driver, dsn := c.Driver, c.DSN
	if driver == "" || dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, "", err
		}
		if driver == "" {
			driver = cfg.DBDriver
		}
		if dsn == "" {
			dsn = cfg.DSN()
		}
	}

	db, dialect, err := database.OpenSQL(ctx, driver, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("cannot connect to database (%s): %w", config.RedactDSN(dsn), err)
	}
	return db, dialect, nil
}
