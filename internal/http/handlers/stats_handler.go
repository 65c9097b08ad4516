package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/plumbing-backend/internal/http/handlers/common"
	"github.com/ignatzorin/plumbing-backend/internal/models"
)

type StatisticsService interface {
	GetStatistics(ctx context.Context) (*models.TaskStatistics, error)
}

// StatsHandler отвечает за сводку по заявкам.
type StatsHandler struct {
	stats StatisticsService
}

// NewStatsHandler создаёт экземпляр.
func NewStatsHandler(stats StatisticsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// GetStatistics GET /statistics
func (h *StatsHandler) GetStatistics(c *gin.Context) {
	stats, err := h.stats.GetStatistics(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
