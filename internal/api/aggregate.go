package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zabdulla/walton-production/internal/aggregator"
)

type progressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// Aggregate scans the reports folder and rebuilds the store, streaming
// progress as SSE.
// POST /api/aggregate?mode=all|daily|weekly|totals
func (h *Handler) Aggregate(c *gin.Context) {
	modes, err := resolveModes(c.DefaultQuery("mode", "all"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	layout, err := h.cfg.Layout()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sheet layout"})
		return
	}

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

	folder := h.cfg.Data.ReportsDir
	send(progressEvent{
		Type:      "start",
		Message:   "scanning reports folder",
		Data:      map[string]any{"folder": folder, "modes": modes},
		Timestamp: time.Now(),
	})

	agg := aggregator.New(aggregator.Options{
		Marker:       h.cfg.Business.FileMarker,
		StrictLayout: h.cfg.Business.StrictLayout,
		Rates:        h.cfg.Rates(),
		Layout:       layout,
		Categories:   h.cfg.Notes.Categories,
	}, h.log)

	totalRecords := 0
	for _, mode := range modes {
		dataset, report, err := agg.Run(folder, mode)
		if err != nil {
			send(progressEvent{
				Type:      "error",
				Message:   fmt.Sprintf("%s run failed: %v", mode, err),
				Data:      map[string]any{"mode": mode},
				Timestamp: time.Now(),
			})
			return
		}

		if err := aggregator.SaveDataset(h.store, dataset, mode); err != nil {
			h.log.Error("failed to persist dataset",
				zap.String("mode", string(mode)),
				zap.Error(err))
			send(progressEvent{
				Type:      "error",
				Message:   fmt.Sprintf("%s persist failed: %v", mode, err),
				Data:      map[string]any{"mode": mode},
				Timestamp: time.Now(),
			})
			return
		}

		totalRecords += report.TotalRecords
		send(progressEvent{
			Type:      "progress",
			Message:   fmt.Sprintf("%s run finished", mode),
			Data:      report,
			Timestamp: time.Now(),
		})
	}

	send(progressEvent{
		Type:      "done",
		Message:   "aggregation finished",
		Data:      map[string]any{"totalRecords": totalRecords},
		Timestamp: time.Now(),
	})
}

func resolveModes(mode string) ([]aggregator.Mode, error) {
	switch mode {
	case "all":
		return []aggregator.Mode{aggregator.ModeDaily, aggregator.ModeWeekly, aggregator.ModeTotals}, nil
	case "daily":
		return []aggregator.Mode{aggregator.ModeDaily}, nil
	case "weekly":
		return []aggregator.Mode{aggregator.ModeWeekly}, nil
	case "totals":
		return []aggregator.Mode{aggregator.ModeTotals}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}
