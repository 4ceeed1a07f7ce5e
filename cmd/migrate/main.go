package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/pressly/goose/v3"

	"bookquery/internal/config"
	"bookquery/internal/database"
	"bookquery/internal/logging"
)

// MigrateCmd runs the goose command named after the selected subcommand.
type MigrateCmd struct{}

func (m *MigrateCmd) Run(ctx context.Context, kctx *kong.Context, cli *CLI) error {
	db, dialect, err := cli.connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	command := kctx.Selected().Name
	if err := database.Migrate(ctx, db, dialect, cli.Dir, command); err != nil {
		return err
	}
	slog.Info("migration command finished", "command", command, "dir", cli.Dir)
	return nil
}

// CreateCmd scaffolds a new goose SQL migration file.
type CreateCmd struct {
	Name string `arg:"" help:"Migration name, e.g. add_books_isbn"`
}

func (c *CreateCmd) Run(cli *CLI) error {
	if err := goose.Create(nil, cli.Dir, c.Name, "sql"); err != nil {
		return err
	}
	slog.Info("migration created", "name", c.Name, "dir", cli.Dir)
	return nil
}

func main() {
	config.LoadEnvFiles()

	logger, err := logging.New(os.Stdout, os.Getenv(config.KeyLogLevel), logging.FormatHuman)
	if err != nil {
		logger, _ = logging.New(os.Stdout, "info", logging.FormatHuman)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("migrate"),
		kong.Description("Apply goose migrations to the books database."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	if err := kctx.Run(&cli); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}
