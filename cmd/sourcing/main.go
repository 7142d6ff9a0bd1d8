package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/Sourcing/internal/api"
	"github.com/MikeSquared-Agency/Sourcing/internal/catalog"
	"github.com/MikeSquared-Agency/Sourcing/internal/config"
	"github.com/MikeSquared-Agency/Sourcing/internal/hermes"
	"github.com/MikeSquared-Agency/Sourcing/internal/inventory"
	"github.com/MikeSquared-Agency/Sourcing/internal/logging"
	"github.com/MikeSquared-Agency/Sourcing/internal/sourcing"
	"github.com/MikeSquared-Agency/Sourcing/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		slog.Error("failed to configure logging", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	// Location catalog, cached in front of the database
	locations := catalog.New(db, cfg.CatalogCacheTTL(), logger)
	go locations.Start()
	defer locations.Stop()

	// Inventory (optional)
	var inv inventory.Service
	if cfg.Inventory.URL != "" {
		inv = inventory.NewHTTPClient(cfg.Inventory.URL, cfg.Inventory.Token, cfg.InventoryTimeout())
	} else {
		logger.Warn("no inventory service configured, every evaluation falls back to all locations")
	}

	evaluator := sourcing.New(locations, inv, hermesClient, db, logger)
	evaluator.SetupSubscriptions()

	// API server
	router := api.NewRouter(db, hermesClient, evaluator, locations, cfg.Server.AdminToken, cfg.Server.RateLimitPerMin, logger)
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}
