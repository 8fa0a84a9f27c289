package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCountsQueries(t *testing.T) {
	rec := NewRecorder()
	rec.RecordQuery("search", 2*time.Millisecond, nil)
	rec.RecordQuery("search", 5*time.Millisecond, errors.New("boom"))

	snap := rec.Query("search")
	assert.Equal(t, 2, snap.Calls)
	assert.Equal(t, 1, snap.Errors)
	assert.Equal(t, 5*time.Millisecond, snap.LastLatency)
	assert.Equal(t, Snapshot{}, rec.Query("list"))
}

func TestRecorderNilSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordQuery("list", time.Millisecond, nil)
	rec.RecordHTTPRequest("GET", "/api/games", 200, time.Millisecond)
	assert.Zero(t, rec.Requests())
	assert.Equal(t, Snapshot{}, rec.Query("list"))
}

func TestSetupDisabledReturnsNoHandler(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{Enabled: false})
	require.NoError(t, err)
	assert.NotNil(t, rec)
	assert.Nil(t, handler)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupEnabledExposesPrometheusMetrics(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled:     true,
		ServiceName: "tablegames-test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })
	require.NotNil(t, handler)

	rec.RecordHTTPRequest(http.MethodGet, "/api/games/:id", http.StatusNotFound, time.Millisecond)
	rec.RecordQuery("get", time.Millisecond, nil)
	assert.Equal(t, 1, rec.Requests())

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, "http_requests_total")
	assert.Contains(t, text, "catalog_queries_total")
}
