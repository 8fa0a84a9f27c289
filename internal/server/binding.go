package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// gameURI binds the :id segment. Ids beyond the signed 64-bit range cannot
// exist in any backing store.
type gameURI struct {
	ID uint64 `uri:"id" binding:"required,min=1,max=9223372036854775807"`
}

// bindURI writes notFound and returns false when the path does not name a
// possible record.
func bindURI(c *gin.Context, req any, notFound string) bool {
	if err := c.ShouldBindUri(req); err != nil {
		writeError(c, http.StatusNotFound, notFound)
		return false
	}
	return true
}
