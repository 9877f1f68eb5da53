package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/zabdulla/walton-production/internal/config"
	"github.com/zabdulla/walton-production/internal/model"
	"github.com/zabdulla/walton-production/internal/store"
)

const testLayoutTOML = `
daily_sheets = ["Mon"]

[[machines]]
name = "BALER 1"
start_row = 2
end_row = 5
`

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store, *config.AppConfig) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	layoutPath := filepath.Join(dir, "layout.toml")
	if err := os.WriteFile(layoutPath, []byte(testLayoutTOML), 0o644); err != nil {
		t.Fatalf("write layout: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Data.ReportsDir = filepath.Join(dir, "reports")
	cfg.Data.OutputDir = filepath.Join(dir, "output")
	cfg.Data.LayoutPath = layoutPath
	if err := os.MkdirAll(cfg.Data.ReportsDir, 0o755); err != nil {
		t.Fatalf("mkdir reports: %v", err)
	}

	st, err := store.New(filepath.Join(dir, "walton.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	h := NewHandler(st, cfg, nil)
	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return r, st, cfg
}

func writeReportWorkbook(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), "Mon"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	cells := map[string]interface{}{
		"J1": "2024-03-04",
		"B3": 8.0,
		"C3": 16.0,
		"D3": "OCC",
		"G3": 2000.0,
		"I3": "belt broke",
	}
	for cell, v := range cells {
		if err := f.SetCellValue("Mon", cell, v); err != nil {
			t.Fatalf("set %s: %v", cell, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

func TestGetStatus_Empty(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: %d body=%s", w.Code, w.Body.String())
	}
	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Initialized {
		t.Fatalf("initialized on empty store: %+v", resp)
	}
}

func TestListDaily_MachineFilter(t *testing.T) {
	r, st, _ := newTestRouter(t)

	records := []*model.DailyRecord{
		{Date: "2024-03-04", DayOfWeek: "Mon", Shift: model.ShiftFirst, MachineName: "BALER 1", InputItem: "OCC"},
		{Date: "2024-03-04", DayOfWeek: "Mon", Shift: model.ShiftFirst, MachineName: "GRINDER", InputItem: "Film"},
	}
	if err := st.BatchInsertDaily(records); err != nil {
		t.Fatalf("insert: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/records?machine=GRINDER", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Records []*model.DailyRecord `json:"records"`
		Count   int                  `json:"count"`
		Total   int                  `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 1 || resp.Total != 2 {
		t.Fatalf("count=%d total=%d, want 1/2", resp.Count, resp.Total)
	}
	if resp.Records[0].MachineName != "GRINDER" {
		t.Fatalf("record = %+v", resp.Records[0])
	}
}

func TestAggregate_DailyMode(t *testing.T) {
	r, st, cfg := newTestRouter(t)

	writeReportWorkbook(t, filepath.Join(cfg.Data.ReportsDir,
		"processing weights 1st shift 03-04-24 to 03-10-24.xlsx"))

	req := httptest.NewRequest(http.MethodPost, "/api/aggregate?mode=daily", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: %d body=%s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"type":"done"`) {
		t.Fatalf("no done event in stream: %s", body)
	}

	n, err := st.CountDaily()
	if err != nil || n != 1 {
		t.Fatalf("daily count = %d, err %v", n, err)
	}
	notes, err := st.GetNotes(store.NoteQueryOptions{})
	if err != nil || len(notes) != 1 || notes[0].Category != "downtime" {
		t.Fatalf("notes = %+v, err %v", notes, err)
	}
}

func TestAggregate_UnknownMode(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/aggregate?mode=hourly", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: %d body=%s", w.Code, w.Body.String())
	}
}

func TestExportStream_NoData(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/export/stream", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), "nothing to export") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestExportStream_Download(t *testing.T) {
	r, st, _ := newTestRouter(t)

	if err := st.BatchInsertDaily([]*model.DailyRecord{{
		Date: "2024-03-04", DayOfWeek: "Mon", Shift: model.ShiftFirst,
		MachineName: "BALER 1", InputItem: "OCC", ActualOutput: 2000,
	}}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/export/stream", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, `"type":"done"`) {
		t.Fatalf("no done event: %s", body)
	}

	re := regexp.MustCompile(`/api/export/download/[0-9a-f-]+`)
	url := re.FindString(body)
	if url == "" {
		t.Fatalf("no download url in stream: %s", body)
	}

	dlReq := httptest.NewRequest(http.MethodGet, url, nil)
	dlW := httptest.NewRecorder()
	r.ServeHTTP(dlW, dlReq)

	if dlW.Code != http.StatusOK {
		t.Fatalf("download status: %d body=%s", dlW.Code, dlW.Body.String())
	}
	if cd := dlW.Header().Get("Content-Disposition"); !strings.Contains(cd, "aggregated_daily_data.xlsx") {
		t.Fatalf("content disposition = %q", cd)
	}
}

func TestDailySummary(t *testing.T) {
	r, st, _ := newTestRouter(t)

	if err := st.BatchInsertDaily([]*model.DailyRecord{
		{
			Date: "2024-03-05", DayOfWeek: "Tue", Shift: model.ShiftFirst, MachineName: "BALER 1",
			InputItem: "OCC", ActualOutput: 2000, MachineHours: 8,
			HasMachineHours: true, HasOutput: true, QualityScore: 100,
		},
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/summary/daily", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Days []struct {
			Date   string `json:"date"`
			Status string `json:"status"`
		} `json:"days"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Days) != 1 || resp.Days[0].Status != "complete" {
		t.Fatalf("days = %+v", resp.Days)
	}
}
