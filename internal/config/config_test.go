package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DATABASE_URL", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME_SECONDS",
		"DB_CONN_MAX_IDLE_SECONDS", "SEARCH_FALLBACK_LIMIT", "LOG_LEVEL", "LOG_FORMAT", "SERVICE_NAME",
		"METRICS_ENABLED", "OTLP_ENDPOINT", "OTLP_INSECURE", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
	cfg := Load()
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 10, cfg.SearchFallbackLimit)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", " postgres://localhost/tablegames ")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("SEARCH_FALLBACK_LIMIT", "4")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("METRICS_ENABLED", "true")
	t.Setenv("OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTLP_INSECURE", "yes")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg := Load()
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "postgres://localhost/tablegames", cfg.DatabaseURL)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 4, cfg.SearchFallbackLimit)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.MetricsEnabled)
	assert.True(t, cfg.OTLPInsecure)
	assert.Equal(t, "collector:4318", cfg.OTLPEndpoint)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("PORT", "http")
	t.Setenv("DB_MAX_IDLE_CONNS", "-3")
	t.Setenv("SEARCH_FALLBACK_LIMIT", "zero")
	t.Setenv("LOG_LEVEL", "chatty")
	t.Setenv("LOG_FORMAT", "xml")
	t.Setenv("METRICS_ENABLED", "maybe")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg := Load()
	def := Default()
	assert.Equal(t, def.Port, cfg.Port)
	assert.Equal(t, def.DBMaxIdleConns, cfg.DBMaxIdleConns)
	assert.Equal(t, def.SearchFallbackLimit, cfg.SearchFallbackLimit)
	assert.Equal(t, def.LogLevel, cfg.LogLevel)
	assert.Equal(t, def.LogFormat, cfg.LogFormat)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, def.ShutdownTimeout, cfg.ShutdownTimeout)
}

func TestConnDurations(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime())
	assert.Equal(t, time.Minute, cfg.DBConnMaxIdleTime())
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TABLEGAMES_TEST_A=from-file\nTABLEGAMES_TEST_B=from-file\n"), 0o644))
	t.Setenv("TABLEGAMES_TEST_A", "from-env")
	t.Setenv("TABLEGAMES_TEST_B", "")
	os.Unsetenv("TABLEGAMES_TEST_B")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-env", os.Getenv("TABLEGAMES_TEST_A"))
	assert.Equal(t, "from-file", os.Getenv("TABLEGAMES_TEST_B"))
}
