package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zabdulla/walton-production/internal/exporter"
)

// ExportStream writes the aggregated artifacts into the output folder and
// streams progress, ending with a download URL per artifact.
// POST /api/export/stream
func (h *Handler) ExportStream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	send := func(event progressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	send(progressEvent{
		Type:      "start",
		Message:   "starting export",
		Data:      map[string]any{"outputDir": h.cfg.Data.OutputDir},
		Timestamp: time.Now(),
	})

	exp := exporter.New(h.store, h.cfg.Data.OutputDir)

	lastPercent := -1
	progressFn := func(p exporter.ProgressEvent) {
		if p.Percent == lastPercent {
			return
		}
		lastPercent = p.Percent
		send(progressEvent{
			Type:      "progress",
			Message:   p.Stage,
			Data:      map[string]any{"percent": p.Percent},
			Timestamp: time.Now(),
		})
	}

	paths, err := exp.Export(progressFn)
	if err != nil {
		msg := "export failed: " + err.Error()
		if errors.Is(err, exporter.ErrNoData) {
			msg = "nothing to export; run aggregation first"
		}
		send(progressEvent{
			Type:      "error",
			Message:   msg,
			Data:      map[string]any{},
			Timestamp: time.Now(),
		})
		return
	}

	downloads := make([]map[string]string, 0, len(paths))
	for _, p := range paths {
		token := h.downloads.put(p, 10*time.Minute)
		downloads = append(downloads, map[string]string{
			"file":        filepath.Base(p),
			"downloadUrl": "/api/export/download/" + token,
		})
	}

	send(progressEvent{
		Type:      "done",
		Message:   "export finished",
		Data:      map[string]any{"percent": 100, "artifacts": downloads},
		Timestamp: time.Now(),
	})
}

// DownloadExport serves an exported artifact by token.
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download link expired"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "export file not found"})
		return
	}

	name := filepath.Base(item.filePath)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Content-Type", contentTypeFor(name))
	c.File(item.filePath)
}

func contentTypeFor(name string) string {
	if strings.HasSuffix(name, ".csv") {
		return "text/csv"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
