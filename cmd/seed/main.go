package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"bookquery/internal/config"
	"bookquery/internal/logging"
)

// CLI is the seed command line.
type CLI struct {
	Driver  string `help:"Database driver (pgx, postgres, sqlite); defaults to DB_DRIVER"`
	DSN     string `help:"Database DSN; defaults to the one assembled from DB_* variables"`
	Authors int    `help:"Number of authors to generate" default:"200"`
	Books   int    `help:"Number of books to generate" default:"10000"`
	Seed    uint64 `help:"Random seed; the same seed yields the same data" default:"42"`
	Reset   bool   `help:"Delete existing books and authors first"`
}

func (c *CLI) Run(ctx context.Context) error {
	if c.Authors <= 0 || c.Books < 0 {
		return fmt.Errorf("need at least one author and a non-negative book count")
	}

	driver, dsn := c.Driver, c.DSN
	if driver == "" || dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if driver == "" {
			driver = cfg.DBDriver
		}
		if dsn == "" {
			dsn = cfg.DSN()
		}
	}

	authors, books := generate(c.Seed, c.Authors, c.Books)
	slog.Info("generated seed data", "authors", len(authors), "books", len(books))

	l, err := newLoader(ctx, driver, dsn)
	if err != nil {
		return fmt.Errorf("cannot connect to database (%s): %w", config.RedactDSN(dsn), err)
	}
	defer l.Close()

	if c.Reset {
		if err := l.Reset(ctx); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	if err := l.Load(ctx, authors, books); err != nil {
		return err
	}

	total, err := l.CountBooks(ctx)
	if err != nil {
		return err
	}
	slog.Info("seeding finished", "inserted_books", len(books), "total_books", total)
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
		kong.Name("seed"),
		kong.Description("Fill the books database with generated authors and books."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	if err := kctx.Run(); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}
