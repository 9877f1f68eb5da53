package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zabdulla/walton-production/internal/config"
	"github.com/zabdulla/walton-production/internal/store"
)

// Handler serves the aggregation API.
type Handler struct {
	store     *store.Store
	cfg       *config.AppConfig
	log       *zap.Logger
	downloads *exportDownloadStore
}

// NewHandler creates the API handler. A nil logger is replaced with a no-op
// one.
func NewHandler(st *store.Store, cfg *config.AppConfig, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		store:     st,
		cfg:       cfg,
		log:       log,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// System status
	router.GET("/status", h.GetStatus)

	// Aggregated data queries
	router.GET("/records", h.ListDaily)
	router.GET("/notes", h.ListNotes)
	router.GET("/weekly", h.ListWeekRows)
	router.GET("/weekly/totals", h.ListWeeklyTotals)

	// Dashboard rollups
	router.GET("/summary/daily", h.DailySummary)
	router.GET("/summary/machines", h.MachineSummary)

	// Batch aggregation over the reports folder
	router.POST("/aggregate", h.Aggregate)

	// Artifact export
	router.POST("/export", h.Export)
	router.POST("/export/stream", h.ExportStream)
	router.GET("/export/download/:token", h.DownloadExport)
}
