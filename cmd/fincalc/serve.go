package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/finfreedom/fincalc/internal/billing"
	"github.com/finfreedom/fincalc/internal/calculation"
	"github.com/finfreedom/fincalc/internal/config"
	"github.com/finfreedom/fincalc/internal/httpapi"
	"github.com/finfreedom/fincalc/internal/logging"
	"github.com/finfreedom/fincalc/internal/storage"
	"github.com/finfreedom/fincalc/internal/storage/cache"
	"github.com/finfreedom/fincalc/internal/storage/memory"
	"github.com/finfreedom/fincalc/internal/storage/postgres"
	"github.com/finfreedom/fincalc/internal/usage"
)

func newServeCommand() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the metered calculator API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadServerConfig(envFile)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, log)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before reading the environment")
	return cmd
}

// backends opens the store and usage cache selected by cfg. The returned cleanup closes them.
func backends(ctx context.Context, cfg *config.ServerConfig, log logrus.FieldLogger) (storage.Store, storage.UsageCache, func(), error) {
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.WithError(err).Warn("close backend")
			}
		}
	}

	var store storage.Store
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set; using in-memory store")
		store = memory.New()
	} else {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("open database: %w", err)
		}
		closers = append(closers, db.Close)
		if err := postgres.Apply(ctx, db); err != nil {
			cleanup()
			return nil, nil, func() {}, fmt.Errorf("apply migrations: %w", err)
		}
		store = postgres.New(db)
	}

	var usageCache storage.UsageCache
	if cfg.RedisAddr == "" {
		usageCache = cache.NewMemoryCache(cfg.UsageCacheTTL)
	} else {
		rc := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.UsageCacheTTL)
		closers = append(closers, rc.Close)
		if err := rc.Ping(ctx); err != nil {
			cleanup()
			return nil, nil, func() {}, fmt.Errorf("connect to redis: %w", err)
		}
		usageCache = rc
	}
	return store, usageCache, cleanup, nil
}

func serve(ctx context.Context, cfg *config.ServerConfig, log *logrus.Logger) error {
	store, usageCache, cleanup, err := backends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logging.NewEngineLogger(log))
	engine.Debug = log.IsLevelEnabled(logrus.DebugLevel)

	usageSvc := usage.NewService(store, usageCache, cfg.FreeCalculations, log)
	processor := billing.NewProcessor(cfg.StripeWebhookSecret, usageSvc, log)
	if !processor.Configured() {
		log.Warn("STRIPE_WEBHOOK_SECRET not set; billing webhook disabled")
	}

	limiter := httpapi.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	stop := make(chan struct{})
	defer close(stop)
	limiter.StartCleanup(10*time.Minute, stop)

	api := httpapi.NewServer(engine, usageSvc, processor, httpapi.NewAuthenticator(cfg.JWTSecret), limiter, log)
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      api.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case <-quit:
		log.Info("shutting down")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}
