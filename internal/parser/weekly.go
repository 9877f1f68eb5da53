package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/zabdulla/walton-production/internal/model"
)

// WeeklyParser extracts machine rows from the "Weekly Report" sheet of one
// processing report workbook. Unlike the daily pipeline, layout conformance
// is a correctness precondition here: the sheet is validated against the
// configured footprint up front and any mismatch fails the whole file.
type WeeklyParser struct {
	file   *excelize.File
	layout Layout
	rates  Rates
	policy RowPolicy
}

// NewWeeklyParser creates a weekly parser with the strict layout policy.
func NewWeeklyParser(file *excelize.File, layout Layout, rates Rates) *WeeklyParser {
	return &WeeklyParser{
		file:   file,
		layout: layout,
		rates:  rates,
		policy: PolicyStrict,
	}
}

// SetPolicy overrides the layout-mismatch policy.
func (p *WeeklyParser) SetPolicy(policy RowPolicy) { p.policy = policy }

// ParseRows extracts one WeekRowRecord per qualifying row of the weekly
// report sheet, walking the configured machine ranges.
func (p *WeeklyParser) ParseRows(src model.SourceFile) ([]*model.WeekRowRecord, error) {
	rows, err := p.readWeeklySheet(src.FileName)
	if err != nil {
		return nil, err
	}

	if p.policy == PolicyStrict {
		if err := p.checkFootprint(src.FileName, rows); err != nil {
			return nil, err
		}
	}

	cols := p.layout.Weekly
	var records []*model.WeekRowRecord

	for _, machine := range p.layout.Machines {
		if len(rows) < machine.EndRow {
			// Only reachable under the lenient policy.
			continue
		}

		for rowIdx := machine.StartRow; rowIdx < machine.EndRow; rowIdx++ {
			machineHours := toFloat(cellAt(rows, rowIdx, cols.MachineHours), 0)
			manHours := toFloat(cellAt(rows, rowIdx, cols.ManHours), 0)
			outputProduct := toText(cellAt(rows, rowIdx, cols.OutputProduct))
			actualOutput := toFloat(cellAt(rows, rowIdx, cols.ActualOutput), 0)

			// Structurally empty rows are expected, not errors.
			if machineHours == 0 && manHours == 0 && actualOutput == 0 && outputProduct == "" {
				continue
			}

			metrics := ComputeMetrics(machineHours, manHours, actualOutput, p.rates)

			records = append(records, &model.WeekRowRecord{
				PeriodStart:   src.PeriodStart,
				PeriodEnd:     src.PeriodEnd,
				Shift:         src.Shift,
				MachineName:   machine.Name,
				MachineHours:  machineHours,
				ManHours:      manHours,
				OutputProduct: outputProduct,
				ActualOutput:  actualOutput,
				OutputPerHour: metrics.OutputPerHour,
				LaborCost:     metrics.LaborCost,
				TotalExpense:  metrics.TotalExpense,
				CostPerPound:  metrics.CostPerPound,
				SourceFile:    src.FileName,
			})
		}
	}

	return records, nil
}

// ParseTotals scans the weekly report sheet for the "<MACHINE> - TOTALS"
// rows and emits one WeeklyRecord per machine with the week's totals.
// weekDate is the anchor date lifted from the file name.
func (p *WeeklyParser) ParseTotals(fileName, weekDate string) ([]*model.WeeklyRecord, error) {
	rows, err := p.readWeeklySheet(fileName)
	if err != nil {
		return nil, err
	}

	cols := p.layout.Weekly
	var records []*model.WeeklyRecord

	for rowIdx := range rows {
		inputItem := toText(cellAt(rows, rowIdx, cols.InputItem))
		if inputItem == "" || !strings.Contains(strings.ToLower(inputItem), "totals") {
			continue
		}

		machineName := machineNameFromTotals(inputItem)
		if machineName == "" {
			continue
		}

		totalMachineHours := toFloat(cellAt(rows, rowIdx, cols.MachineHours), 0)
		totalManHours := toFloat(cellAt(rows, rowIdx, cols.ManHours), 0)
		totalOutput := toFloat(cellAt(rows, rowIdx, cols.ActualOutput), 0)

		metrics := ComputeMetrics(totalMachineHours, totalManHours, totalOutput, p.rates)

		records = append(records, &model.WeeklyRecord{
			WeekDate:          weekDate,
			MachineName:       machineName,
			TotalMachineHours: totalMachineHours,
			TotalManHours:     totalManHours,
			TotalOutput:       totalOutput,
			OutputPerHour:     metrics.OutputPerHour,
			LaborCost:         metrics.LaborCost,
			TotalExpense:      metrics.TotalExpense,
			CostPerPound:      metrics.CostPerPound,
			SourceFile:        fileName,
		})
	}

	return records, nil
}

// readWeeklySheet loads the configured weekly sheet, failing with
// ErrMissingSheet when the workbook does not contain it.
func (p *WeeklyParser) readWeeklySheet(fileName string) ([][]string, error) {
	found := false
	for _, name := range p.file.GetSheetList() {
		if name == p.layout.WeeklySheet {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%s: %w %q (found: %v)", fileName, ErrMissingSheet, p.layout.WeeklySheet, p.file.GetSheetList())
	}

	rows, err := p.file.GetRows(p.layout.WeeklySheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", p.layout.WeeklySheet, err)
	}
	return rows, nil
}

// checkFootprint validates the sheet extent against the layout's minimum
// required rows and columns.
func (p *WeeklyParser) checkFootprint(fileName string, rows [][]string) error {
	needRows := p.layout.minRows()
	needCols := p.layout.minWeeklyCols()

	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}

	if len(rows) < needRows || maxCols < needCols {
		return fmt.Errorf("%s: %w", fileName, &LayoutMismatchError{
			Rows: len(rows), Cols: maxCols, NeedRows: needRows, NeedCols: needCols,
		})
	}
	return nil
}

// machineNameFromTotals recovers the machine name from a totals label like
// "BALER 1 - TOTALS", keeping any hyphens that belong to the name itself.
func machineNameFromTotals(inputItem string) string {
	idx := strings.LastIndex(inputItem, "-")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(inputItem[:idx])
}
