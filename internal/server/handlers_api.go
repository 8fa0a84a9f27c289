package server

import (
	"errors"
	"net/http"

	"tablegames/internal/catalog"
	"tablegames/internal/logging"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleListGames(c *gin.Context) {
	games, err := s.catalog.List(c.Request.Context())
	if err != nil {
		s.internalError(c, "list games failed", err)
		return
	}
	writeJSON(c, http.StatusOK, games)
}

func (s *Server) handleGetGame(c *gin.Context) {
	var uri gameURI
	if !bindURI(c, &uri, gameNotFoundMessage) {
		return
	}
	game, err := s.catalog.Get(c.Request.Context(), uint(uri.ID))
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(c, http.StatusNotFound, gameNotFoundMessage)
		return
	}
	if err != nil {
		s.internalError(c, "get game failed", err, logging.FieldGameID, uri.ID)
		return
	}
	writeJSON(c, http.StatusOK, game)
}

func (s *Server) handleSearch(c *gin.Context) {
	// q is used verbatim; absent and empty both browse.
	query := c.Query("q")
	games, err := s.catalog.Search(c.Request.Context(), query)
	if err != nil {
		s.internalError(c, "search games failed", err, "query", query)
		return
	}
	s.requestLogger(c).Debug("search served", "query", query, logging.FieldCount, len(games))
	writeJSON(c, http.StatusOK, games)
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.pinger != nil {
		if err := s.pinger.Ping(c.Request.Context()); err != nil {
			s.requestLogger(c).Error("health check failed", "error", err)
			writeError(c, http.StatusServiceUnavailable, unavailableMessage)
			return
		}
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) internalError(c *gin.Context, msg string, err error, attrs ...any) {
	s.requestLogger(c).Error(msg, append(attrs, "error", err)...)
	writeError(c, http.StatusInternalServerError, internalErrorMessage)
}
