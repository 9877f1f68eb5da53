package parser

import (
	"strconv"
	"strings"
)

// toFloat converts a raw cell value to a float64, returning def for empty
// or non-numeric content. Thousands separators and percent signs are
// stripped first; these show up in hand-formatted sheets.
func toFloat(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

// toText returns the trimmed string form of a cell, empty for missing
// content. All free-text cells enter the pipeline through here.
func toText(s string) string {
	return strings.TrimSpace(s)
}

// cellAt returns the raw cell at (row, col) of a sheet grid, or "" when the
// grid is ragged and the coordinate falls outside it. excelize trims
// trailing empty cells per row, so short rows are normal.
func cellAt(rows [][]string, row, col int) string {
	if row < 0 || row >= len(rows) {
		return ""
	}
	r := rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}
