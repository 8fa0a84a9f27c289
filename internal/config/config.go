package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                     string
	DatabaseURL              string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
	SearchFallbackLimit      int
	LogLevel                 string
	LogFormat                string
	ServiceName              string
	MetricsEnabled           bool
	OTLPEndpoint             string
	OTLPInsecure             bool
	ShutdownTimeout          time.Duration
}

func Default() Config {
	return Config{
		Port:                     "8080",
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
		SearchFallbackLimit:      10,
		LogLevel:                 "info",
		LogFormat:                "text",
		ServiceName:              "tablegames",
		ShutdownTimeout:          10 * time.Second,
	}
}

func Load() Config {
	cfg := Default()
	if raw := strings.TrimSpace(os.Getenv("PORT")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 && value < 65536 {
			cfg.Port = raw
		}
	}
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.DBMaxOpenConns = positiveIntEnv("DB_MAX_OPEN_CONNS", cfg.DBMaxOpenConns)
	cfg.DBMaxIdleConns = positiveIntEnv("DB_MAX_IDLE_CONNS", cfg.DBMaxIdleConns)
	cfg.DBConnMaxLifetimeSeconds = positiveIntEnv("DB_CONN_MAX_LIFETIME_SECONDS", cfg.DBConnMaxLifetimeSeconds)
	cfg.DBConnMaxIdleTimeSeconds = positiveIntEnv("DB_CONN_MAX_IDLE_SECONDS", cfg.DBConnMaxIdleTimeSeconds)
	cfg.SearchFallbackLimit = positiveIntEnv("SEARCH_FALLBACK_LIMIT", cfg.SearchFallbackLimit)
	if raw := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))); raw != "" {
		switch raw {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = raw
		}
	}
	if raw := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT"))); raw == "json" || raw == "text" {
		cfg.LogFormat = raw
	}
	if raw := strings.TrimSpace(os.Getenv("SERVICE_NAME")); raw != "" {
		cfg.ServiceName = raw
	}
	cfg.MetricsEnabled = boolEnv("METRICS_ENABLED", cfg.MetricsEnabled)
	cfg.OTLPEndpoint = strings.TrimSpace(os.Getenv("OTLP_ENDPOINT"))
	cfg.OTLPInsecure = boolEnv("OTLP_INSECURE", cfg.OTLPInsecure)
	if raw := strings.TrimSpace(os.Getenv("SHUTDOWN_TIMEOUT")); raw != "" {
		if value, err := time.ParseDuration(raw); err == nil && value > 0 {
			cfg.ShutdownTimeout = value
		}
	}
	return cfg
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func (c Config) DBConnMaxLifetime() time.Duration {
	return time.Duration(c.DBConnMaxLifetimeSeconds) * time.Second
}

func (c Config) DBConnMaxIdleTime() time.Duration {
	return time.Duration(c.DBConnMaxIdleTimeSeconds) * time.Second
}

func positiveIntEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func boolEnv(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if raw == "1" || strings.EqualFold(raw, "true") || strings.EqualFold(raw, "yes") {
		return true
	}
	if raw == "0" || strings.EqualFold(raw, "false") || strings.EqualFold(raw, "no") {
		return false
	}
	return fallback
}
