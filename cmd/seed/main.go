package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"tablegames/internal/config"
	"tablegames/internal/db"
	"tablegames/internal/logging"
	"tablegames/internal/seed"
)

type options struct {
	file        string
	autoMigrate bool
}

func main() {
	var opts options
	flag.StringVar(&opts.file, "file", "", "path to a games YAML fixture (defaults to the embedded catalog)")
	flag.BoolVar(&opts.autoMigrate, "automigrate", false, "create the games table with gorm before seeding")
	flag.Parse()

	dotenvErr := config.LoadDotEnv(".env")
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: cfg.ServiceName})
	if dotenvErr != nil {
		logger.Warn("failed to load .env", "error", dotenvErr)
	}

	if err := run(context.Background(), cfg, logger, opts); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

// run seeds the configured database and always releases the connection
// before returning.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger, opts options) error {
	result, err := loadFixture(opts.file)
	if err != nil {
		return fmt.Errorf("read games: %w", err)
	}
	for _, warning := range result.Warnings {
		logger.Warn("metadata schema", "detail", warning)
	}

	conn, err := db.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("database connection: %w", err)
	}
	defer func() {
		if closeErr := db.Close(conn); closeErr != nil {
			logger.Error("failed to close database", "error", closeErr)
		}
	}()

	if opts.autoMigrate {
		if err := db.Migrate(conn); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}

	inserted, err := db.SeedGames(ctx, conn, result.Games)
	if err != nil {
		return fmt.Errorf("seed games: %w", err)
	}
	logger.Info("seeded games", "inserted", inserted, "skipped", len(result.Games)-inserted)
	return nil
}

func loadFixture(path string) (seed.Result, error) {
	if path == "" {
		return seed.Default()
	}
	return seed.LoadFile(path)
}
