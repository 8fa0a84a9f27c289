package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"tablegames/internal/config"
	"tablegames/internal/logging"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	dir := flag.String("dir", "db/migrations", "migrations directory")
	down := flag.Bool("down", false, "roll back every migration")
	flag.Parse()

	dotenvErr := config.LoadDotEnv(".env")
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: cfg.ServiceName})
	if dotenvErr != nil {
		logger.Warn("failed to load .env", "error", dotenvErr)
	}
	if cfg.DatabaseURL == "" {
		fatal(logger, "DATABASE_URL is not set", nil)
	}

	m, err := migrate.New("file://"+*dir, cfg.DatabaseURL)
	if err != nil {
		fatal(logger, "migration setup failed", err)
	}
	defer m.Close()

	apply := m.Up
	if *down {
		apply = m.Down
	}
	if err := apply(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		fatal(logger, "database migration failed", err)
	}
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		fatal(logger, "read migration version failed", err)
	}
	logger.Info("database migrations applied", "version", version, "dirty", dirty, "down", *down)
}

func fatal(logger *slog.Logger, msg string, err error) {
	if err != nil {
		logger.Error(msg, "error", err)
	} else {
		logger.Error(msg)
	}
	os.Exit(1)
}
