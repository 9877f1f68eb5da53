package api

import (
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zabdulla/walton-production/internal/exporter"
)

// Export writes the aggregated artifacts and returns their download URLs in
// one response. ExportStream is the progress-reporting variant.
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	exp := exporter.New(h.store, h.cfg.Data.OutputDir)

	paths, err := exp.Export(nil)
	if err != nil {
		if errors.Is(err, exporter.ErrNoData) {
			c.JSON(http.StatusConflict, gin.H{"error": "nothing to export; run aggregation first"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed: " + err.Error()})
		return
	}

	artifacts := make([]gin.H, 0, len(paths))
	for _, p := range paths {
		token := h.downloads.put(p, 10*time.Minute)
		artifacts = append(artifacts, gin.H{
			"file":        filepath.Base(p),
			"downloadUrl": "/api/export/download/" + token,
		})
	}

	c.JSON(http.StatusOK, gin.H{"artifacts": artifacts})
}
