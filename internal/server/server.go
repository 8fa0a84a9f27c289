package server

import (
	"context"
	"log/slog"
	"net/http"

	"tablegames/internal/catalog"
	"tablegames/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	catalog  *catalog.Service
	logger   *slog.Logger
	recorder *metrics.Recorder
	metrics  http.Handler
	pinger   Pinger
}

type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithRecorder(recorder *metrics.Recorder) Option {
	return func(s *Server) { s.recorder = recorder }
}

// WithMetricsHandler mounts handler at /metrics.
func WithMetricsHandler(handler http.Handler) Option {
	return func(s *Server) { s.metrics = handler }
}

func WithPinger(pinger Pinger) Option {
	return func(s *Server) { s.pinger = pinger }
}

func New(svc *catalog.Service, opts ...Option) *Server {
	s := &Server{
		catalog: svc,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(s.requestID(), s.accessLog(), gin.CustomRecovery(s.recoverPanic))

	api := r.Group("/api")
	api.GET("/games", s.handleListGames)
	api.GET("/games/:id", s.handleGetGame)
	api.GET("/search", s.handleSearch)

	r.GET("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics))
	}
	r.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "not found")
	})
	return r
}
