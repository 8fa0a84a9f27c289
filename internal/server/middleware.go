package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tablegames/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	unmatchedRoute  = "unmatched"
)

// requestID propagates X-Request-ID or assigns a fresh one, and stores a
// request-scoped logger on the request context.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if rid == "" || len(rid) > 128 {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		logger := s.logger.With(logging.FieldRequestID, rid)
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), logger))
		c.Next()
	}
}

// accessLog logs one line per request and records HTTP metrics keyed by the
// route template so ids do not explode label cardinality.
func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		status := c.Writer.Status()
		s.recorder.RecordHTTPRequest(c.Request.Method, route, status, duration)

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		} else if status >= http.StatusBadRequest {
			level = slog.LevelWarn
		}
		s.requestLogger(c).Log(c.Request.Context(), level, "http request",
			logging.FieldMethod, c.Request.Method,
			logging.FieldPath, c.Request.URL.Path,
			logging.FieldRoute, route,
			logging.FieldStatusCode, status,
			logging.FieldDurationMS, duration.Milliseconds(),
		)
	}
}

func (s *Server) recoverPanic(c *gin.Context, recovered any) {
	s.requestLogger(c).Error("panic serving request", "panic", recovered)
	writeError(c, http.StatusInternalServerError, internalErrorMessage)
	c.Abort()
}

func (s *Server) requestLogger(c *gin.Context) *slog.Logger {
	return logging.FromContext(c.Request.Context(), s.logger)
}
