package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"orbital/internal/amqp"
	"orbital/internal/cache"
	"orbital/internal/cli"
	apphttp "orbital/internal/http"
	"orbital/internal/log"
	"orbital/internal/middleware/ratelimit"
	"orbital/internal/services"
)

func main() {
	cfg, logger, err := cli.Bootstrap(log.ComponentApp)
	if err != nil {
		os.Exit(1)
	}

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	store, err := cli.InitBackend(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize preference backend", log.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := store.Cleanup(); err != nil {
			logger.Error("Failed to close preference backend", log.FieldError, err)
		}
	}()

	dashboard := cli.NewDashboard(cfg, nil, logger)

	cacheManager := cache.NewManager(logger)
	for _, c := range dashboard.Caches() {
		cacheManager.Register(c)
	}
	cacheManager.StartCleanup(cfg.CacheTTL)
	defer cacheManager.Stop()

	// Exports stay disabled without AMQP_URL. The publisher is only assigned
	// when the client exists so a nil *amqp.Client never hides in the interface.
	var publisher services.ExportPublisher
	if cfg.ExportsEnabled() {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("Export publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("Exports disabled - no AMQP_URL provided")
	}

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Dependencies{
		Dashboard:   dashboard,
		Preferences: services.NewPreferenceService(store.Store, logger),
		Exports:     services.NewExportService(dashboard, publisher, logger),
		Ready:       store.Ready,
		Logger:      logger,
		RateLimit: ratelimit.Config{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
		},
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting orbital server",
			"port", cfg.Port,
			"backend", cfg.DataBackend,
			log.FieldRows, len(dashboard.Snapshot().Transactions))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cli.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
