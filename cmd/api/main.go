package main

import (
	"context"
	"dashboard-tokens/internal/api"
	"dashboard-tokens/internal/config"
	"dashboard-tokens/internal/metrics"
	"dashboard-tokens/internal/repository"
	"dashboard-tokens/internal/services"
	"dashboard-tokens/internal/session"
	"dashboard-tokens/migrations"
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	conf, err := config.New()
	if err != nil {
		return err
	}

	// Configure logger
	logger := conf.Logger()

	// Open SQL connection through bun
	bunDB, err := repository.Open(conf.DB_DRIVER, conf.DB_URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := bunDB.Close(); err != nil {
			logger.Error("cannot close database", "err", err)
		}
	}()

	// Run database migrations
	if err := migrations.Migrate(bunDB.DB, conf.DB_DRIVER, logger); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Metrics registry served on /metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Create tokens repository and service
	tokens := repository.NewTokens(bunDB, logger)
	service := services.NewService(logger, tokens, metrics.New(registry))

	sessions := session.New(conf.SessionSecret, conf.SessionCookie)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create the HTTP server
	server := api.NewServer(conf, logger, service, sessions, registry)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
