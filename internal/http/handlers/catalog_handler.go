package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/plumbing-backend/internal/catalog"
	"github.com/ignatzorin/plumbing-backend/internal/dto"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// GetCatalog GET /catalog
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CatalogResponse{
		Fallback:    h.catalog.Fallback(),
		Specialties: h.catalog.Sections(),
	})
}
