package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/plumbing-backend/internal/http/static"
)

// Landing GET /
func Landing(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", static.IndexHTML)
}
