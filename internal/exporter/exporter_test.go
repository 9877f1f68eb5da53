package exporter

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zabdulla/walton-production/internal/model"
	"github.com/zabdulla/walton-production/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "walton.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestExport_NoData(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	e := New(st, t.TempDir())

	if _, err := e.Export(nil); !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}

func TestExport_DailyRoundTrip(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	want := []*model.DailyRecord{
		{
			Date: "2024-03-05", DayOfWeek: "Tue", WeekStart: "2024-03-04", WeekEnd: "2024-03-10",
			Shift: model.ShiftFirst, MachineName: "BALER 1",
			InputItem: "OCC", ActualInput: 2100, OutputProduct: "Bales", ActualOutput: 2000,
			MachineHours: 8, ManHours: 16, Operator: "J. Smith", Comment: "belt broke",
			OutputPerHour: 250, LaborCost: 384, TotalExpense: 384, CostPerPound: 0.192,
			HasMachineHours: true, HasManHours: true, HasOutput: true, HasComment: true,
			QualityScore: 100,
			SourceFile:   "processing weights 1st shift 03-04-24 to 03-10-24.xlsx",
			SourceSheet:  "Tue",
		},
		{
			Date: "2024-03-06", DayOfWeek: "Wed", WeekStart: "2024-03-04", WeekEnd: "2024-03-10",
			Shift: model.ShiftFirst, MachineName: "GRINDER",
			InputItem: "Film", Operator: "R. Diaz", QualityScore: 10,
		},
	}
	if err := st.BatchInsertDaily(want); err != nil {
		t.Fatalf("insert: %v", err)
	}

	dir := t.TempDir()
	e := New(st, dir)

	var stages []string
	paths, err := e.Export(func(ev ProgressEvent) { stages = append(stages, ev.Stage) })
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("paths = %v, want the daily workbook only", paths)
	}
	if len(stages) == 0 || stages[len(stages)-1] != "done" {
		t.Fatalf("stages = %v", stages)
	}

	got, err := ReadDaily(filepath.Join(dir, DailyWorkbookName))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("records = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if *got[i] != *want[i] {
			t.Fatalf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestExport_AllArtifacts(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	if err := st.BatchInsertDaily([]*model.DailyRecord{{
		Date: "2024-03-04", DayOfWeek: "Mon", WeekStart: "2024-03-04", WeekEnd: "2024-03-10",
		Shift: model.ShiftFirst, MachineName: "BALER 1", InputItem: "OCC",
	}}); err != nil {
		t.Fatalf("insert daily: %v", err)
	}
	if err := st.BatchInsertNotes([]*model.NoteRecord{{
		Date: "2024-03-04", Shift: model.ShiftFirst, MachineName: "BALER 1",
		Note: "belt broke", Category: "downtime",
	}}); err != nil {
		t.Fatalf("insert notes: %v", err)
	}
	if err := st.BatchInsertWeekRows([]*model.WeekRowRecord{{
		PeriodStart: "2024-03-04", PeriodEnd: "2024-03-10", Shift: model.ShiftFirst,
		MachineName: "BALER 1", MachineHours: 30, ActualOutput: 12000, OutputPerHour: 400,
	}}); err != nil {
		t.Fatalf("insert week rows: %v", err)
	}
	if err := st.BatchInsertWeeklyTotals([]*model.WeeklyRecord{{
		WeekDate: "2024-03-04", MachineName: "BALER 1",
		TotalMachineHours: 40, TotalManHours: 70, TotalOutput: 15000,
		OutputPerHour: 375.12349, CostPerPound: 0.1926,
	}}); err != nil {
		t.Fatalf("insert totals: %v", err)
	}

	dir := t.TempDir()
	paths, err := New(st, dir).Export(nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(paths) != 4 {
		t.Fatalf("paths = %v, want 4 artifacts", paths)
	}
	for _, name := range []string{DailyWorkbookName, NotesWorkbookName, MasterWorkbookName, TotalsCSVName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing artifact %s: %v", name, err)
		}
	}

	in, err := os.Open(filepath.Join(dir, TotalsCSVName))
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer in.Close()
	rows, err := csv.NewReader(in).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("csv rows = %d, want header + 1", len(rows))
	}
	if rows[1][0] != "2024-03-04" || rows[1][1] != "BALER 1" {
		t.Fatalf("csv row = %v", rows[1])
	}
	// Quantities round to three decimals in the CSV.
	if rows[1][5] != "375.123" {
		t.Fatalf("output_per_hour = %q, want 375.123", rows[1][5])
	}
	if rows[1][8] != "0.193" {
		t.Fatalf("cost_per_pound = %q, want 0.193", rows[1][8])
	}
}
