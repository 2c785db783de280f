package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"car-leasing/internal/catalog"
	"car-leasing/internal/config"
	"car-leasing/internal/database"
	"car-leasing/internal/events"
	"car-leasing/internal/handler"
	"car-leasing/internal/middleware"
	"car-leasing/internal/notify"
	"car-leasing/internal/repository"
	"car-leasing/internal/router"
	"car-leasing/internal/service"
	"car-leasing/internal/session"

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
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting car-leasing API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.EnsureSchema(ctx, pool, logger); err != nil {
			return err
		}
	}

	// Initialize repositories
	vehicleRepo := repository.NewVehicleRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	contactRepo := repository.NewContactRepository(pool, logger)

	// Seed the catalog from the configured file or the built-in document
	if cfg.Catalog.SeedOnStart {
		seeder := catalog.NewSeeder(catalog.NewLoader(ctx, cfg.S3, logger), vehicleRepo, logger)
		if _, err := seeder.Apply(ctx, cfg.Catalog.SeedFile); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	// Initialize session store
	sessions, stopSessions, err := newSessionStore(ctx, cfg.Session, cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	defer stopSessions()

	// Initialize order event publisher
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQP.Enabled {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize event publisher: %w", err)
		}
		publisher = amqpPublisher
	} else {
		logger.Info().Msg("order events disabled (AMQP disabled)")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	// Initialize contact notifier
	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.Mail.Enabled {
		notifier = notify.NewSendGridNotifier(cfg.Mail.APIKey, cfg.Mail.From, cfg.Mail.FromName, cfg.Mail.To, logger)
	}

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	// Initialize services
	catalogService := service.NewCatalogService(vehicleRepo, logger)
	orderService := service.NewOrderService(orderRepo, vehicleRepo, publisher, metrics, logger)
	contactService := service.NewContactService(contactRepo, notifier, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Vehicle: handler.NewVehicleHandler(catalogService, logger),
		Order:   handler.NewOrderHandler(orderService, sessions, logger),
		Contact: handler.NewContactHandler(contactService, logger),
		Session: handler.NewSessionHandler(sessions, logger),
	}

	// Initialize router
	mux := router.New(handlers, router.Options{
		SessionCookie: cfg.Session.CookieName,
		SessionTTL:    cfg.Session.TTL,
		StaticDir:     cfg.Server.StaticDir,
		CORSOrigin:    cfg.Server.CORSOrigin,
		Metrics:       metrics,
		Gatherer:      registry,
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
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

// newSessionStore builds the last-order store for the configured backend.
// The returned func releases its resources.
func newSessionStore(ctx context.Context, cfg config.SessionConfig, redisCfg config.RedisConfig, logger zerolog.Logger) (session.Store, func(), error) {
	if cfg.Backend == "redis" {
		store, err := session.NewRedisStore(ctx, redisCfg.URL, cfg.TTL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("backend", "redis").Msg("session store ready")
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close redis session store")
			}
		}, nil
	}

	store := session.NewMemoryStore(cfg.TTL)
	sweeper, err := session.NewSweeper(store, cfg.SweepSchedule, logger)
	if err != nil {
		return nil, nil, err
	}
	sweeper.Start()
	logger.Info().Str("backend", "memory").Msg("session store ready")

	return store, func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		if err := sweeper.Stop(stopCtx); err != nil {
			logger.Error().Err(err).Msg("failed to stop session sweeper")
		}
	}, nil
}
