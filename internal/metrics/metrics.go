package metrics

import (
	"sync"
	"time"
)

type queryStats struct {
	calls       int
	errors      int
	lastLatency time.Duration
}

// Recorder tracks HTTP and catalog query metrics. The in-memory counters are
// always kept; the OpenTelemetry instruments are only present after Setup.
type Recorder struct {
	mu       sync.Mutex
	queries  map[string]*queryStats
	requests int
	otel     *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		queries: make(map[string]*queryStats),
		otel:    otel,
	}
}

// RecordQuery counts a catalog store call and its latency.
func (r *Recorder) RecordQuery(op string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats, ok := r.queries[op]
	if !ok {
		stats = &queryStats{}
		r.queries[op] = stats
	}
	stats.calls++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordQuery(op, duration, err)
	}
}

// RecordHTTPRequest tracks a served request.
func (r *Recorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.requests++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordHTTPRequest(method, route, status, duration)
	}
}

// Snapshot is a copy of the counters for one query operation.
type Snapshot struct {
	Calls       int
	Errors      int
	LastLatency time.Duration
}

func (r *Recorder) Query(op string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.queries[op]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:       stats.calls,
		Errors:      stats.errors,
		LastLatency: stats.lastLatency,
	}
}

func (r *Recorder) Requests() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests
}
