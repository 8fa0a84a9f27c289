package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"tablegames/internal/logging"
)

var migrationName = regexp.MustCompile(`^[a-z0-9_]+$`)

func main() {
	name := flag.String("name", "", "migration name, snake_case")
	dir := flag.String("dir", filepath.Join("db", "migrations"), "migrations directory")
	flag.Parse()

	logger := logging.NewLogger(logging.Config{Level: "info", Service: "migrate-create"})
	if !migrationName.MatchString(*name) {
		logger.Error("migration name must be non-empty snake_case", "name", *name)
		os.Exit(1)
	}

	upPath, downPath, err := create(*dir, *name, time.Now().UTC())
	if err != nil {
		logger.Error("create migration failed", "error", err)
		os.Exit(1)
	}
	logger.Info("created migration", "up", upPath, "down", downPath)
}

// create writes an empty up/down pair using the golang-migrate naming scheme.
func create(dir, name string, now time.Time) (string, string, error) {
	base := fmt.Sprintf("%s_%s", now.Format("20060102150405"), name)
	upPath := filepath.Join(dir, base+".up.sql")
	downPath := filepath.Join(dir, base+".down.sql")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create migrations dir: %w", err)
	}
	if err := writeFile(upPath, "-- "+name+" (up)\n"); err != nil {
		return "", "", err
	}
	if err := writeFile(downPath, "-- "+name+" (down)\n"); err != nil {
		return "", "", err
	}
	return upPath, downPath, nil
}

func writeFile(path, content string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	_, err = file.WriteString(content)
	return err
}
