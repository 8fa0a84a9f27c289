package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tablegames/internal/catalog"
	"tablegames/internal/config"
	"tablegames/internal/db"
	"tablegames/internal/logging"
	"tablegames/internal/metrics"
	"tablegames/internal/seed"
	"tablegames/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	dotenvErr := config.LoadDotEnv(".env")
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})
	slog.SetDefault(logger)
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	if dotenvErr != nil {
		logger.Warn("failed to load .env", "error", dotenvErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	recorder, metricsHandler, shutdownMetrics, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:      cfg.MetricsEnabled,
		ServiceName:  cfg.ServiceName,
		OtlpEndpoint: cfg.OTLPEndpoint,
		OtlpInsecure: cfg.OTLPInsecure,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownMetrics(shutdownCtx); err != nil {
			logger.Warn("metrics shutdown failed", "error", err)
		}
	}()

	repo, pinger, closeRepo, err := openRepository(cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	svc := catalog.NewService(repo,
		catalog.WithBrowseLimit(cfg.SearchFallbackLimit),
		catalog.WithObserver(recorder),
	)
	opts := []server.Option{
		server.WithLogger(logger),
		server.WithRecorder(recorder),
		server.WithMetricsHandler(metricsHandler),
	}
	if pinger != nil {
		opts = append(opts, server.WithPinger(pinger))
	}
	srv := server.New(svc, opts...)

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("tablegames server listening", "addr", httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// openRepository uses the database when DATABASE_URL is set and otherwise
// serves the embedded fixture from memory.
func openRepository(cfg config.Config, logger *slog.Logger) (catalog.Repository, server.Pinger, func(), error) {
	if cfg.DatabaseURL == "" {
		fixture, err := seed.Default()
		if err != nil {
			return nil, nil, nil, err
		}
		store := catalog.NewMemoryStore()
		if err := seed.Populate(store, fixture.Games); err != nil {
			return nil, nil, nil, err
		}
		logger.Warn("DATABASE_URL is not set; serving embedded catalog from memory", logging.FieldCount, store.Len())
		return store, nil, func() {}, nil
	}

	conn, err := db.Open(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	closeConn := func() {
		if err := db.Close(conn); err != nil {
			logger.Warn("closing database failed", "error", err)
		}
	}
	store := db.NewGameStore(conn)
	return store, store, closeConn, nil
}
