package server

import (
	"github.com/gin-gonic/gin"
)

const (
	gameNotFoundMessage  = "Game not found"
	internalErrorMessage = "internal server error"
	unavailableMessage   = "database unavailable"
)

func writeJSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

func writeError(c *gin.Context, status int, message string) {
	writeJSON(c, status, gin.H{"error": message})
}
