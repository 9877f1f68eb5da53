package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/zabdulla/walton-production/internal/model"
)

// sheetDateFormats are the accepted forms for the per-sheet date cell.
// Excel renders the cell differently depending on the template version.
var sheetDateFormats = []string{"2006-01-02", "1-2-06", "1-2-2006", "1/2/2006", "1/2/06"}

// DailyParser extracts per-day machine records from the Mon..Sat sheets of
// one processing report workbook.
type DailyParser struct {
	file        *excelize.File
	layout      Layout
	rates       Rates
	categorizer *NoteCategorizer
	policy      RowPolicy
}

// NewDailyParser creates a daily parser. The daily pipeline defaults to the
// lenient layout policy: a machine whose range falls outside the grid is
// skipped rather than failing the file.
func NewDailyParser(file *excelize.File, layout Layout, rates Rates, categorizer *NoteCategorizer) *DailyParser {
	return &DailyParser{
		file:        file,
		layout:      layout,
		rates:       rates,
		categorizer: categorizer,
		policy:      PolicyLenient,
	}
}

// SetPolicy overrides the layout-mismatch policy.
func (p *DailyParser) SetPolicy(policy RowPolicy) { p.policy = policy }

// DailyParseResult is the outcome of parsing one workbook's daily sheets.
// Warnings record sheets that were skipped without failing the file.
type DailyParseResult struct {
	Records  []*model.DailyRecord
	Notes    []*model.NoteRecord
	Warnings []string
}

// ParseWorkbook walks the configured daily sheets and extracts one record
// per qualifying row. Sheets absent from the workbook are skipped silently;
// sheets with an unreadable date cell are skipped with a warning.
func (p *DailyParser) ParseWorkbook(src model.SourceFile) (*DailyParseResult, error) {
	result := &DailyParseResult{}

	sheetSet := make(map[string]bool)
	for _, name := range p.file.GetSheetList() {
		sheetSet[name] = true
	}

	for _, sheetName := range p.layout.DailySheets {
		if !sheetSet[sheetName] {
			continue
		}

		rows, err := p.file.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheetName, err)
		}

		sheetDate := extractSheetDate(rows, p.layout.Daily.Date)
		if sheetDate == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s/%s: could not extract date, skipping sheet", src.FileName, sheetName))
			continue
		}

		if err := p.parseSheet(src, sheetName, sheetDate, rows, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// parseSheet extracts records from one daily sheet grid.
func (p *DailyParser) parseSheet(src model.SourceFile, sheetName, sheetDate string, rows [][]string, result *DailyParseResult) error {
	cols := p.layout.Daily

	for _, machine := range p.layout.Machines {
		if len(rows) < machine.EndRow {
			if p.policy == PolicyStrict {
				return fmt.Errorf("%s/%s machine %q: %w", src.FileName, sheetName, machine.Name,
					&LayoutMismatchError{Rows: len(rows), NeedRows: machine.EndRow})
			}
			continue
		}

		for rowIdx := machine.StartRow; rowIdx < machine.EndRow; rowIdx++ {
			machineHours := toFloat(cellAt(rows, rowIdx, cols.MachineHours), 0)
			manHours := toFloat(cellAt(rows, rowIdx, cols.ManHours), 0)
			inputItem := toText(cellAt(rows, rowIdx, cols.InputItem))
			actualInput := toFloat(cellAt(rows, rowIdx, cols.ActualInput), 0)
			outputProduct := toText(cellAt(rows, rowIdx, cols.OutputProduct))
			actualOutput := toFloat(cellAt(rows, rowIdx, cols.ActualOutput), 0)
			operator := toText(cellAt(rows, rowIdx, cols.Operator))
			comment := toText(cellAt(rows, rowIdx, cols.Comment))

			// Spacer rows and pre-aggregated totals never become records.
			if inputItem == "" || strings.Contains(strings.ToUpper(inputItem), "TOTALS") {
				continue
			}
			if machineHours == 0 && manHours == 0 && actualOutput == 0 && operator == "" {
				continue
			}

			metrics := ComputeMetrics(machineHours, manHours, actualOutput, p.rates)
			flags := QualityOf(machineHours, manHours, actualOutput, comment)

			result.Records = append(result.Records, &model.DailyRecord{
				Date:            sheetDate,
				DayOfWeek:       sheetName,
				WeekStart:       src.PeriodStart,
				WeekEnd:         src.PeriodEnd,
				Shift:           src.Shift,
				MachineName:     machine.Name,
				InputItem:       inputItem,
				ActualInput:     actualInput,
				OutputProduct:   outputProduct,
				ActualOutput:    actualOutput,
				MachineHours:    machineHours,
				ManHours:        manHours,
				Operator:        operator,
				Comment:         comment,
				OutputPerHour:   metrics.OutputPerHour,
				LaborCost:       metrics.LaborCost,
				TotalExpense:    metrics.TotalExpense,
				CostPerPound:    metrics.CostPerPound,
				HasMachineHours: flags.HasMachineHours,
				HasManHours:     flags.HasManHours,
				HasOutput:       flags.HasOutput,
				HasComment:      flags.HasComment,
				QualityScore:    flags.Score(),
				SourceFile:      src.FileName,
				SourceSheet:     sheetName,
			})

			if comment != "" {
				result.Notes = append(result.Notes, &model.NoteRecord{
					Date:        sheetDate,
					Shift:       src.Shift,
					MachineName: machine.Name,
					InputItem:   inputItem,
					Operator:    operator,
					Note:        comment,
					Category:    p.categorizer.Categorize(comment),
				})
			}
		}
	}

	return nil
}

// extractSheetDate reads the embedded reporting date from row 0 of a daily
// sheet and normalizes it to YYYY-MM-DD. Returns "" when the cell is blank
// or matches none of the accepted formats.
func extractSheetDate(rows [][]string, dateCol int) string {
	raw := toText(cellAt(rows, 0, dateCol))
	if raw == "" {
		return ""
	}
	for _, layout := range sheetDateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
