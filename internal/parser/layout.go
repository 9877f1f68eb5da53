package parser

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// RowPolicy decides what happens when a sheet is smaller than the layout
// requires. The daily pipeline tolerates partially filled sheets and skips
// the affected machine; the weekly pipeline treats layout conformance as a
// precondition and fails the file.
type RowPolicy int

const (
	PolicyLenient RowPolicy = iota // skip machines whose range falls outside the grid
	PolicyStrict                   // fail the whole file on any mismatch
)

// MachineRange maps one machine to the inclusive-exclusive row interval
// [StartRow, EndRow) where its entries live.
type MachineRange struct {
	Name     string `toml:"name" json:"name"`
	StartRow int    `toml:"start_row" json:"startRow"`
	EndRow   int    `toml:"end_row" json:"endRow"`
}

// DailyColumns holds the zero-based column roles of a daily sheet.
type DailyColumns struct {
	MachineHours  int `toml:"machine_hours" json:"machineHours"`
	ManHours      int `toml:"man_hours" json:"manHours"`
	InputItem     int `toml:"input_item" json:"inputItem"`
	ActualInput   int `toml:"actual_input" json:"actualInput"`
	OutputProduct int `toml:"output_product" json:"outputProduct"`
	ActualOutput  int `toml:"actual_output" json:"actualOutput"`
	Operator      int `toml:"operator" json:"operator"`
	Comment       int `toml:"comment" json:"comment"`
	Date          int `toml:"date" json:"date"` // per-sheet date cell, read at row 0
}

// WeeklyColumns holds the zero-based column roles of the weekly report
// sheet (columns B, C, F, G in the physical workbook).
type WeeklyColumns struct {
	MachineHours  int `toml:"machine_hours" json:"machineHours"`
	ManHours      int `toml:"man_hours" json:"manHours"`
	InputItem     int `toml:"input_item" json:"inputItem"` // used to find "<MACHINE> - TOTALS" rows
	OutputProduct int `toml:"output_product" json:"outputProduct"`
	ActualOutput  int `toml:"actual_output" json:"actualOutput"`
}

// Layout is the facility's physical report layout: hand-authored
// configuration, not derived from data. Machines iterate in declaration
// order.
type Layout struct {
	Machines    []MachineRange `toml:"machines" json:"machines"`
	Daily       DailyColumns   `toml:"daily_columns" json:"dailyColumns"`
	Weekly      WeeklyColumns  `toml:"weekly_columns" json:"weeklyColumns"`
	DailySheets []string       `toml:"daily_sheets" json:"dailySheets"`
	WeeklySheet string         `toml:"weekly_sheet" json:"weeklySheet"`
}

// DefaultLayout mirrors the processing facility's current report template.
func DefaultLayout() Layout {
	return Layout{
		Machines: []MachineRange{
			{Name: "AUTO TIE BALER", StartRow: 4, EndRow: 13},
			{Name: "BALER 1", StartRow: 16, EndRow: 25},
			{Name: "BALER 2", StartRow: 28, EndRow: 37},
			{Name: "GUILLOTINE", StartRow: 40, EndRow: 44},
			{Name: "SHREDDER", StartRow: 47, EndRow: 50},
			{Name: "AVANGUARD DENSIFIER (OLD)", StartRow: 53, EndRow: 55},
			{Name: "GREEN MAX DENSIFIER (NEW)", StartRow: 58, EndRow: 60},
			{Name: "EXTRUDER", StartRow: 63, EndRow: 66},
			{Name: "GRINDER", StartRow: 69, EndRow: 74},
		},
		Daily: DailyColumns{
			MachineHours:  1,
			ManHours:      2,
			InputItem:     3,
			ActualInput:   4,
			OutputProduct: 5,
			ActualOutput:  6,
			Operator:      7,
			Comment:       8,
			Date:          9,
		},
		Weekly: WeeklyColumns{
			MachineHours:  1,
			ManHours:      2,
			InputItem:     3,
			OutputProduct: 5,
			ActualOutput:  6,
		},
		DailySheets: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		WeeklySheet: "Weekly Report",
	}
}

// LoadLayout reads a layout override from a TOML file. Callers fall back to
// DefaultLayout when the file does not exist.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, err
	}
	layout := DefaultLayout()
	if err := toml.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if err := layout.Validate(); err != nil {
		return Layout{}, fmt.Errorf("layout %s: %w", path, err)
	}
	return layout, nil
}

// Validate rejects layouts with empty names or inverted row ranges.
func (l Layout) Validate() error {
	if len(l.Machines) == 0 {
		return fmt.Errorf("no machine ranges configured")
	}
	for _, m := range l.Machines {
		if m.Name == "" {
			return fmt.Errorf("machine range with empty name")
		}
		if m.StartRow >= m.EndRow {
			return fmt.Errorf("machine %q: start_row %d >= end_row %d", m.Name, m.StartRow, m.EndRow)
		}
	}
	return nil
}

// minRows is the smallest row count a sheet needs to cover every
// configured machine range.
func (l Layout) minRows() int {
	max := 0
	for _, m := range l.Machines {
		if m.EndRow > max {
			max = m.EndRow
		}
	}
	return max
}

// minWeeklyCols is the smallest column count the weekly column roles need.
func (l Layout) minWeeklyCols() int {
	max := l.Weekly.MachineHours
	for _, c := range []int{l.Weekly.ManHours, l.Weekly.OutputProduct, l.Weekly.ActualOutput} {
		if c > max {
			max = c
		}
	}
	return max + 1
}
