package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/plumbing-backend/internal/dto"
	"github.com/ignatzorin/plumbing-backend/internal/http/handlers/common"
	"github.com/ignatzorin/plumbing-backend/internal/pkg/apperror"
)

type Seeder interface {
	SeedProfessionals(ctx context.Context) (int, error)
}

// SeedHandler заполняет справочник мастеров по запросу (только development).
type SeedHandler struct {
	seeder Seeder
}

// NewSeedHandler создаёт новый seed handler.
func NewSeedHandler(seeder Seeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// Seed POST /seed
func (h *SeedHandler) Seed(c *gin.Context) {
	inserted, err := h.seeder.SeedProfessionals(c.Request.Context())
	if err != nil {
		common.Fail(c, apperror.Database(err, "не удалось заполнить справочник мастеров"))
		return
	}
	c.JSON(http.StatusOK, dto.SeedResponse{Inserted: inserted})
}
