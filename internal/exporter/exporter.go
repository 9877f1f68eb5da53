package exporter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/zabdulla/walton-production/internal/model"
	"github.com/zabdulla/walton-production/internal/store"
)

// Output file names. Downstream dashboards key on these exact names.
const (
	DailyWorkbookName  = "aggregated_daily_data.xlsx"
	NotesWorkbookName  = "aggregated_notes.xlsx"
	MasterWorkbookName = "aggregated_master_data.xlsx"
	TotalsCSVName      = "master_file.csv"
)

// ErrNoData is returned when an export is requested and the store holds
// nothing to write.
var ErrNoData = errors.New("no aggregated data to export")

// Exporter writes the aggregated datasets out of the store into the
// workbooks and CSV the reporting side consumes.
type Exporter struct {
	store     *store.Store
	outputDir string
}

// New creates an exporter writing into outputDir.
func New(st *store.Store, outputDir string) *Exporter {
	return &Exporter{
		store:     st,
		outputDir: outputDir,
	}
}

// Export writes every dataset that has rows and returns the paths written.
// It fails with ErrNoData when the store is completely empty, so a batch
// run that imported zero files never produces output artifacts.
func (e *Exporter) Export(progress func(ProgressEvent)) ([]string, error) {
	daily, err := e.store.GetDaily(store.DailyQueryOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to load daily records: %w", err)
	}
	notes, err := e.store.GetNotes(store.NoteQueryOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	weekRows, err := e.store.GetWeekRows()
	if err != nil {
		return nil, fmt.Errorf("failed to load week rows: %w", err)
	}
	totals, err := e.store.GetWeeklyTotals()
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly totals: %w", err)
	}

	if len(daily) == 0 && len(notes) == 0 && len(weekRows) == 0 && len(totals) == 0 {
		return nil, ErrNoData
	}
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var paths []string
	if len(daily) > 0 {
		reportProgress(progress, 10, "writing daily workbook")
		p, err := e.WriteDaily(daily)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	if len(notes) > 0 {
		reportProgress(progress, 40, "writing notes workbook")
		p, err := e.WriteNotes(notes)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	if len(weekRows) > 0 {
		reportProgress(progress, 65, "writing master workbook")
		p, err := e.WriteWeekRows(weekRows)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	if len(totals) > 0 {
		reportProgress(progress, 85, "writing totals csv")
		p, err := e.WriteWeeklyTotalsCSV(totals)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}

	reportProgress(progress, 100, "done")
	return paths, nil
}

var dailyHeader = []string{
	"Date", "Day", "Week Start", "Week End", "Shift", "Machine",
	"Input Item", "Actual Input", "Output Product", "Actual Output",
	"Machine Hours", "Man Hours", "Operator", "Comment",
	"Output Per Hour", "Labor Cost", "Total Expense", "Cost Per Pound",
	"Has Machine Hours", "Has Man Hours", "Has Output", "Has Comment",
	"Quality Score", "Source File", "Source Sheet",
}

// WriteDaily writes the per-machine daily records workbook.
func (e *Exporter) WriteDaily(records []*model.DailyRecord) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Daily Data"
	if err := renameDefaultSheet(f, sheet); err != nil {
		return "", err
	}
	if err := writeHeaderRow(f, sheet, dailyHeader); err != nil {
		return "", err
	}

	for i, r := range records {
		row := []interface{}{
			r.Date, r.DayOfWeek, r.WeekStart, r.WeekEnd, string(r.Shift), r.MachineName,
			r.InputItem, r.ActualInput, r.OutputProduct, r.ActualOutput,
			r.MachineHours, r.ManHours, r.Operator, r.Comment,
			r.OutputPerHour, r.LaborCost, r.TotalExpense, r.CostPerPound,
			r.HasMachineHours, r.HasManHours, r.HasOutput, r.HasComment,
			r.QualityScore, r.SourceFile, r.SourceSheet,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return "", err
		}
	}

	path := filepath.Join(e.outputDir, DailyWorkbookName)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", DailyWorkbookName, err)
	}
	return path, nil
}

var notesHeader = []string{
	"Date", "Shift", "Machine", "Input Item", "Operator", "Note", "Category",
}

// WriteNotes writes the categorized supervisor notes workbook.
func (e *Exporter) WriteNotes(notes []*model.NoteRecord) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Notes"
	if err := renameDefaultSheet(f, sheet); err != nil {
		return "", err
	}
	if err := writeHeaderRow(f, sheet, notesHeader); err != nil {
		return "", err
	}

	for i, n := range notes {
		row := []interface{}{
			n.Date, string(n.Shift), n.MachineName, n.InputItem, n.Operator, n.Note, n.Category,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return "", err
		}
	}

	path := filepath.Join(e.outputDir, NotesWorkbookName)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", NotesWorkbookName, err)
	}
	return path, nil
}

var masterHeader = []string{
	"Period Start", "Period End", "Shift", "Machine",
	"Machine Hours", "Man Hours", "Output Product", "Actual Output",
	"Output Per Hour", "Labor Cost", "Total Expense", "Cost Per Pound",
	"Source File",
}

// WriteWeekRows writes the verified weekly-report rows workbook.
func (e *Exporter) WriteWeekRows(rows []*model.WeekRowRecord) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Master Data"
	if err := renameDefaultSheet(f, sheet); err != nil {
		return "", err
	}
	if err := writeHeaderRow(f, sheet, masterHeader); err != nil {
		return "", err
	}

	for i, r := range rows {
		row := []interface{}{
			r.PeriodStart, r.PeriodEnd, string(r.Shift), r.MachineName,
			r.MachineHours, r.ManHours, r.OutputProduct, r.ActualOutput,
			r.OutputPerHour, r.LaborCost, r.TotalExpense, r.CostPerPound,
			r.SourceFile,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return "", err
		}
	}

	path := filepath.Join(e.outputDir, MasterWorkbookName)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", MasterWorkbookName, err)
	}
	return path, nil
}

var totalsCSVHeader = []string{
	"week_date", "machine_name",
	"total_machine_hours", "total_man_hours", "total_output",
	"output_per_hour", "labor_cost", "total_expense", "cost_per_pound",
	"source_file",
}

// WriteWeeklyTotalsCSV writes the weekly machine totals as CSV. Quantities
// are rounded to three decimals here and nowhere else; the workbooks carry
// full precision.
func (e *Exporter) WriteWeeklyTotalsCSV(totals []*model.WeeklyRecord) (string, error) {
	path := filepath.Join(e.outputDir, TotalsCSVName)
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", TotalsCSVName, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(totalsCSVHeader); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range totals {
		rec := []string{
			r.WeekDate, r.MachineName,
			formatRounded(r.TotalMachineHours), formatRounded(r.TotalManHours), formatRounded(r.TotalOutput),
			formatRounded(r.OutputPerHour), formatRounded(r.LaborCost), formatRounded(r.TotalExpense), formatRounded(r.CostPerPound),
			r.SourceFile,
		}
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	return path, nil
}

func renameDefaultSheet(f *excelize.File, name string) error {
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	return nil
}

func writeHeaderRow(f *excelize.File, sheet string, header []string) error {
	styleID, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, styleID); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}
	return nil
}

func formatRounded(v float64) string {
	return strconv.FormatFloat(roundHalfUp(v, 3), 'f', -1, 64)
}

func roundHalfUp(v float64, digits int) float64 {
	scale := math.Pow10(digits)
	x := v * scale
	if x >= 0 {
		return math.Floor(x+0.5) / scale
	}
	return -math.Floor(-x+0.5) / scale
}
