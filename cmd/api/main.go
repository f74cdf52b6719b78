package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"voucherhub/internal/blacklist"
	"voucherhub/internal/config"
	"voucherhub/internal/database"
	"voucherhub/internal/handler"
	"voucherhub/internal/metrics"
	"voucherhub/internal/repository"
	"voucherhub/internal/router"
	"voucherhub/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger, os.Stdout)
	logger.Info().Msg("starting voucherhub API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			return err
		}
	}

	// Load blacklist files from S3 with local fallback
	registry, err := blacklist.NewRegistry(ctx, cfg.Blacklist.Files, newBlacklistLoader(ctx, cfg.S3, logger), logger)
	if err != nil {
		return fmt.Errorf("failed to load blacklist: %w", err)
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(pool, logger)
	voucherRepo := repository.NewVoucherRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize services
	customerService := service.NewCustomerService(customerRepo, registry, logger)
	voucherService := service.NewVoucherService(voucherRepo, customerRepo, logger)
	orderService := service.NewOrderService(orderRepo, voucherRepo, customerRepo, logger)

	// Initialize metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.NewHTTPMetrics(reg)

	// Initialize router
	mux := router.New(router.Handlers{
		Health:   handler.NewHealthHandler(pool, logger),
		Customer: handler.NewCustomerHandler(customerService, voucherService, orderService, logger),
		Voucher:  handler.NewVoucherHandler(voucherService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
	}, router.Options{
		APIKey:   cfg.Auth.APIKey,
		Metrics:  httpMetrics,
		Gatherer: reg,
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Int("blacklist_entries", registry.Size()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newBlacklistLoader returns a loader that tries S3 first when it is enabled
// and reachable, and the local file system otherwise.
func newBlacklistLoader(ctx context.Context, cfg config.S3Config, logger zerolog.Logger) blacklist.Loader {
	fileLoader := blacklist.NewFileLoader(logger)

	if !cfg.Enabled {
		logger.Info().Msg("using local file system for blacklist files (S3 disabled)")
		return blacklist.NewFallbackLoader(nil, fileLoader, "", logger)
	}

	s3Loader, err := blacklist.NewS3Loader(ctx, cfg.Bucket, cfg.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return blacklist.NewFallbackLoader(nil, fileLoader, "", logger)
	}

	return blacklist.NewFallbackLoader(s3Loader, fileLoader, cfg.Prefix, logger)
}
