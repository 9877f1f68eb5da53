package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zabdulla/walton-production/internal/stats"
	"github.com/zabdulla/walton-production/internal/store"
)

// DailySummary returns the day-level rollup across all machines.
// GET /api/summary/daily?from=&to=
func (h *Handler) DailySummary(c *gin.Context) {
	records, err := h.store.GetDaily(store.DailyQueryOptions{
		DateFrom: c.Query("from"),
		DateTo:   c.Query("to"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query daily records"})
		return
	}

	summaries := stats.DailySummaries(records)
	c.JSON(http.StatusOK, gin.H{
		"days":  summaries,
		"count": len(summaries),
	})
}

// MachineSummary returns the per-machine daily rollup.
// GET /api/summary/machines?from=&to=&machine=
func (h *Handler) MachineSummary(c *gin.Context) {
	records, err := h.store.GetDaily(store.DailyQueryOptions{
		DateFrom: c.Query("from"),
		DateTo:   c.Query("to"),
		Machine:  c.Query("machine"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query daily records"})
		return
	}

	days := stats.MachineDailySummaries(records)
	c.JSON(http.StatusOK, gin.H{
		"machines": days,
		"count":    len(days),
	})
}
