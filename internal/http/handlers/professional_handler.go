package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/plumbing-backend/internal/http/handlers/common"
	"github.com/ignatzorin/plumbing-backend/internal/models"
)

type ProfessionalService interface {
	ListProfessionals(ctx context.Context) ([]models.Professional, error)
	GetProfessional(ctx context.Context, id int64) (*models.Professional, error)
}

type ProfessionalHandler struct {
	professionals ProfessionalService
}

func NewProfessionalHandler(professionals ProfessionalService) *ProfessionalHandler {
	return &ProfessionalHandler{professionals: professionals}
}

// ListProfessionals GET /professionals
func (h *ProfessionalHandler) ListProfessionals(c *gin.Context) {
	professionals, err := h.professionals.ListProfessionals(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, professionals)
}

// GetProfessional GET /professionals/:id
func (h *ProfessionalHandler) GetProfessional(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}

	professional, err := h.professionals.GetProfessional(c.Request.Context(), id)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, professional)
}
