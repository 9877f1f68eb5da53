package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/zabdulla/walton-production/internal/model"
)

// ReadDaily loads a daily workbook written by WriteDaily back into records.
// Dashboards built on the exported file and the live API see the same data
// because of this round trip.
func ReadDaily(path string) ([]*model.DailyRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Daily Data")
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook has no header row")
	}

	var records []*model.DailyRecord
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		records = append(records, &model.DailyRecord{
			Date:        field(row, 0),
			DayOfWeek:   field(row, 1),
			WeekStart:   field(row, 2),
			WeekEnd:     field(row, 3),
			Shift:       model.Shift(field(row, 4)),
			MachineName: field(row, 5),

			InputItem:     field(row, 6),
			ActualInput:   floatField(row, 7),
			OutputProduct: field(row, 8),
			ActualOutput:  floatField(row, 9),
			MachineHours:  floatField(row, 10),
			ManHours:      floatField(row, 11),
			Operator:      field(row, 12),
			Comment:       field(row, 13),

			OutputPerHour: floatField(row, 14),
			LaborCost:     floatField(row, 15),
			TotalExpense:  floatField(row, 16),
			CostPerPound:  floatField(row, 17),

			HasMachineHours: boolField(row, 18),
			HasManHours:     boolField(row, 19),
			HasOutput:       boolField(row, 20),
			HasComment:      boolField(row, 21),
			QualityScore:    int(floatField(row, 22)),

			SourceFile:  field(row, 23),
			SourceSheet: field(row, 24),
		})
	}
	return records, nil
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func floatField(row []string, i int) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(field(row, i)), 64)
	if err != nil {
		return 0
	}
	return v
}

func boolField(row []string, i int) bool {
	return strings.EqualFold(strings.TrimSpace(field(row, i)), "true")
}
