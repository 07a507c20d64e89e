package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/rocketcart/api/routes"
	"github.com/angelmondragon/rocketcart/internal/cart"
	"github.com/angelmondragon/rocketcart/internal/inventory"
	"github.com/angelmondragon/rocketcart/internal/notify"
	"github.com/angelmondragon/rocketcart/internal/storage"
	"github.com/angelmondragon/rocketcart/pkg/config"
	"github.com/angelmondragon/rocketcart/pkg/instance"
	"github.com/angelmondragon/rocketcart/pkg/logger"
	"github.com/angelmondragon/rocketcart/pkg/metrics"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Console:     cfg.App.IsDev(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to open cart storage", err)
		stop()
		os.Exit(1)
	}
	closeBackend := func() {
		if err := backend.Close(); err != nil {
			logg.Error(context.Background(), "error closing cart storage", err)
		}
	}
	defer closeBackend()
	// exit skips deferred calls, so release storage and signals first.
	exit := func() {
		closeBackend()
		stop()
		os.Exit(1)
	}

	inventoryClient, err := inventory.NewClient(cfg.Inventory.BaseURL, inventory.WithTimeout(cfg.Inventory.Timeout))
	if err != nil {
		logg.Error(ctx, "failed to create inventory client", err)
		exit()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	store, err := cart.NewStore(ctx, cart.StoreParams{
		Inventory: inventoryClient,
		Storage:   backend.Snapshots,
		Notifier:  notify.Multi{notify.NewLog(logg), notify.Contextual{}},
		Logger:    logg,
		Metrics:   metrics.NewCartMetrics(registry),
	})
	if err != nil {
		logg.Error(ctx, "failed to load cart", err)
		exit()
	}

	addr := ":" + cfg.App.Port
	srvCtx := logg.WithFields(ctx, map[string]any{
		"env":            cfg.App.Env,
		"addr":           addr,
		"instance":       instance.GetID(),
		"storage_driver": backend.Driver,
	})
	logg.Info(srvCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, backend, registry, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(srvCtx, "api server stopped unexpectedly", err)
			exit()
		}
	case <-ctx.Done():
		logg.Info(srvCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(srvCtx, "api server shutdown failed", err)
		}
	}
}
