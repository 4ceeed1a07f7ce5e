package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bookquery/internal/book"
	"bookquery/internal/config"
	"bookquery/internal/database"
	"bookquery/internal/httpx"
	"bookquery/internal/logging"
	"bookquery/internal/metrics"
)

const readyTimeout = 500 * time.Millisecond

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DSN()
	db, err := database.Open(ctx, cfg.DBDriver, dsn)
	if err != nil {
		return fmt.Errorf("cannot open database (%s): %w", config.RedactDSN(dsn), err)
	}
	defer db.Close()
	logger.Info("database connection OK", "driver", cfg.DBDriver, "dialect", db.Dialect())

	handler, err := newHandler(ctx, cfg, db, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.AppAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newHandler wires the books API on top of db and wraps it in the middleware chain.
// ctx bounds background work such as rate limiter cleanup.
func newHandler(ctx context.Context, cfg config.Config, db database.DB, logger *slog.Logger) (http.Handler, error) {
	repo, err := book.NewSQLRepo(
		metrics.InstrumentExecutor(db),
		db.Dialect(),
		book.WithQueryTimeout(cfg.QueryTimeout),
		book.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	bookService := book.NewService(repo, logger)
	bookHandler := book.NewHTTPHandler(bookService)

	schema, err := book.NewGraphQLSchema(bookService)
	if err != nil {
		return nil, fmt.Errorf("build graphql schema: %w", err)
	}

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := db.Ping(pingCtx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", promhttp.Handler())

	router.HandleFunc("GET /v1/books", bookHandler.List)
	router.Handle("/graphql", book.NewGraphQLHandler(schema))

	var middlewares []func(http.Handler) http.Handler
	middlewares = append(middlewares,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSOrigins),
	)
	if cfg.RateLimitRPS > 0 {
		middlewares = append(middlewares, httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware)
	}
	middlewares = append(middlewares, httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes))

	return httpx.Chain(router, middlewares...), nil
}
