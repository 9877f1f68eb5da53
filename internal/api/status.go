package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse reports what the store currently holds.
type StatusResponse struct {
	Initialized  bool   `json:"initialized"`
	DailyCount   int    `json:"dailyCount"`
	NoteCount    int    `json:"noteCount"`
	WeekRowCount int    `json:"weekRowCount"`
	TotalsCount  int    `json:"totalsCount"`
	ReportsDir   string `json:"reportsDir"`
	OutputDir    string `json:"outputDir"`
}

// GetStatus returns the system status.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	daily, err := h.store.CountDaily()
	if err != nil {
		daily = 0
	}
	notes, err := h.store.CountNotes()
	if err != nil {
		notes = 0
	}
	weekRows, err := h.store.CountWeekRows()
	if err != nil {
		weekRows = 0
	}
	totals, err := h.store.CountWeeklyTotals()
	if err != nil {
		totals = 0
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:  daily+notes+weekRows+totals > 0,
		DailyCount:   daily,
		NoteCount:    notes,
		WeekRowCount: weekRows,
		TotalsCount:  totals,
		ReportsDir:   h.cfg.Data.ReportsDir,
		OutputDir:    h.cfg.Data.OutputDir,
	})
}
