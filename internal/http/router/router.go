package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/ignatzorin/plumbing-backend/internal/config"
	"github.com/ignatzorin/plumbing-backend/internal/http/handlers"
	"github.com/ignatzorin/plumbing-backend/internal/http/middleware"
)

// SetupRouter регистрирует все маршруты. seedHandler может быть nil,
// маршрут /seed доступен только в development.
func SetupRouter(
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	catalogHandler *handlers.CatalogHandler,
	professionalHandler *handlers.ProfessionalHandler,
	taskHandler *handlers.TaskHandler,
	statsHandler *handlers.StatsHandler,
	seedHandler *handlers.SeedHandler,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLogger())
	r.Use(middleware.ErrorHandler())

	r.GET("/", handlers.Landing)
	r.GET("/health", healthHandler.Health)
	r.GET("/catalog", catalogHandler.GetCatalog)

	if seedHandler != nil && cfg.Env == config.EnvDevelopment {
		r.POST("/seed", seedHandler.Seed)
	}

	r.GET("/professionals", professionalHandler.ListProfessionals)
	r.GET("/professionals/:id", middleware.IDValidator("id"), professionalHandler.GetProfessional)

	r.GET("/tasks", taskHandler.ListTasks)
	r.GET("/tasks/:id", middleware.IDValidator("id"), taskHandler.GetTask)

	// Изменения заявок ограничены по частоте
	writes := r.Group("/tasks")
	writes.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		writes.POST("", taskHandler.CreateTask)
		writes.PUT("/:id", middleware.IDValidator("id"), taskHandler.UpdateTask)
		writes.PATCH("/:id/reschedule", middleware.IDValidator("id"), taskHandler.RescheduleTask)
		writes.DELETE("/:id", middleware.IDValidator("id"), taskHandler.DeleteTask)
	}

	r.GET("/statistics", statsHandler.GetStatistics)

	return r
}

// WithCORS оборачивает роутер CORS обработчиком.
func WithCORS(cfg *config.Config, h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", middleware.HeaderRequestID},
		ExposedHeaders: []string{middleware.HeaderRequestID, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         600,
	}).Handler(h)
}
