package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zabdulla/walton-production/internal/store"
)

// ListDaily returns daily records filtered by query parameters.
// GET /api/records?from=&to=&shift=&machine=&limit=&offset=
func (h *Handler) ListDaily(c *gin.Context) {
	opts := store.DailyQueryOptions{
		DateFrom: c.Query("from"),
		DateTo:   c.Query("to"),
		Shift:    c.Query("shift"),
		Machine:  c.Query("machine"),
		Limit:    intQuery(c, "limit"),
		Offset:   intQuery(c, "offset"),
	}

	records, err := h.store.GetDaily(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query daily records"})
		return
	}

	total, err := h.store.CountDaily()
	if err != nil {
		total = len(records)
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"count":   len(records),
		"total":   total,
	})
}

// ListNotes returns notes filtered by category and machine.
// GET /api/notes?category=&machine=&limit=
func (h *Handler) ListNotes(c *gin.Context) {
	notes, err := h.store.GetNotes(store.NoteQueryOptions{
		Category: c.Query("category"),
		Machine:  c.Query("machine"),
		Limit:    intQuery(c, "limit"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notes": notes,
		"count": len(notes),
	})
}

// ListWeekRows returns the verified weekly-report rows.
// GET /api/weekly
func (h *Handler) ListWeekRows(c *gin.Context) {
	rows, err := h.store.GetWeekRows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query week rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":  rows,
		"count": len(rows),
	})
}

// ListWeeklyTotals returns the per-machine weekly totals.
// GET /api/weekly/totals
func (h *Handler) ListWeeklyTotals(c *gin.Context) {
	totals, err := h.store.GetWeeklyTotals()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query weekly totals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totals": totals,
		"count":  len(totals),
	})
}

func intQuery(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
