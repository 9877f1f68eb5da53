package store

import (
	"path/filepath"
	"testing"

	"github.com/zabdulla/walton-production/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "walton.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_DailyRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	records := []*model.DailyRecord{
		{
			Date: "2024-03-05", DayOfWeek: "Tue", WeekStart: "2024-03-04", WeekEnd: "2024-03-10",
			Shift: model.ShiftFirst, MachineName: "BALER 1", InputItem: "OCC",
			MachineHours: 8, ManHours: 16, ActualOutput: 2000,
			OutputPerHour: 250, LaborCost: 384, TotalExpense: 384, CostPerPound: 0.192,
			HasMachineHours: true, HasManHours: true, HasOutput: true, QualityScore: 100,
		},
		{
			Date: "2024-03-04", DayOfWeek: "Mon", WeekStart: "2024-03-04", WeekEnd: "2024-03-10",
			Shift: model.ShiftFirst, MachineName: "GRINDER", InputItem: "Film",
			Operator: "R. Diaz", QualityScore: 10,
		},
	}
	if err := s.BatchInsertDaily(records); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := s.GetDaily(DailyQueryOptions{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("records = %d, want 2", len(got))
	}
	// Query orders by (date, shift, machine).
	if got[0].MachineName != "GRINDER" || got[1].MachineName != "BALER 1" {
		t.Fatalf("order = %s, %s", got[0].MachineName, got[1].MachineName)
	}
	if got[1].QualityScore != 100 || !got[1].HasOutput {
		t.Fatalf("record = %+v", got[1])
	}

	filtered, err := s.GetDaily(DailyQueryOptions{Machine: "GRINDER"})
	if err != nil {
		t.Fatalf("filtered query: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Operator != "R. Diaz" {
		t.Fatalf("filtered = %+v", filtered)
	}

	n, err := s.CountDaily()
	if err != nil || n != 2 {
		t.Fatalf("count = %d, err %v", n, err)
	}

	if err := s.ClearDaily(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n, _ := s.CountDaily(); n != 0 {
		t.Fatalf("count after clear = %d", n)
	}
}

func TestStore_NotesAndWeekly(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	notes := []*model.NoteRecord{
		{Date: "2024-03-04", Shift: model.ShiftFirst, MachineName: "BALER 1", Note: "belt broke", Category: "downtime"},
		{Date: "2024-03-05", Shift: model.ShiftFirst, MachineName: "SHREDDER", Note: "ran out", Category: "material"},
	}
	if err := s.BatchInsertNotes(notes); err != nil {
		t.Fatalf("insert notes: %v", err)
	}
	byCat, err := s.GetNotes(NoteQueryOptions{Category: "downtime"})
	if err != nil {
		t.Fatalf("query notes: %v", err)
	}
	if len(byCat) != 1 || byCat[0].MachineName != "BALER 1" {
		t.Fatalf("notes = %+v", byCat)
	}

	totals := []*model.WeeklyRecord{
		{WeekDate: "2024-03-04", MachineName: "BALER 1", TotalMachineHours: 40, TotalManHours: 70, TotalOutput: 15000, OutputPerHour: 375},
	}
	if err := s.BatchInsertWeeklyTotals(totals); err != nil {
		t.Fatalf("insert totals: %v", err)
	}
	gotTotals, err := s.GetWeeklyTotals()
	if err != nil {
		t.Fatalf("query totals: %v", err)
	}
	if len(gotTotals) != 1 || gotTotals[0].OutputPerHour != 375 {
		t.Fatalf("totals = %+v", gotTotals)
	}

	weekRows := []*model.WeekRowRecord{
		{PeriodStart: "2024-03-04", PeriodEnd: "2024-03-10", Shift: model.ShiftFirst, MachineName: "BALER 1", MachineHours: 30, ActualOutput: 12000, OutputPerHour: 400},
	}
	if err := s.BatchInsertWeekRows(weekRows); err != nil {
		t.Fatalf("insert week rows: %v", err)
	}
	gotRows, err := s.GetWeekRows()
	if err != nil {
		t.Fatalf("query week rows: %v", err)
	}
	if len(gotRows) != 1 || gotRows[0].OutputPerHour != 400 {
		t.Fatalf("week rows = %+v", gotRows)
	}
}
