package store

import (
	"fmt"

	"github.com/zabdulla/walton-production/internal/model"
)

// BatchInsertDaily inserts daily records inside a single transaction.
func (s *Store) BatchInsertDaily(records []*model.DailyRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO daily_records (
			date, day_of_week, week_start, week_end, shift, machine_name,
			input_item, actual_input, output_product, actual_output,
			machine_hours, man_hours, operator, comment,
			output_per_hour, labor_cost, total_expense, cost_per_pound,
			has_machine_hours, has_man_hours, has_output, has_comment,
			quality_score, source_file, source_sheet
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			r.Date, r.DayOfWeek, r.WeekStart, r.WeekEnd, r.Shift, r.MachineName,
			r.InputItem, r.ActualInput, r.OutputProduct, r.ActualOutput,
			r.MachineHours, r.ManHours, r.Operator, r.Comment,
			r.OutputPerHour, r.LaborCost, r.TotalExpense, r.CostPerPound,
			r.HasMachineHours, r.HasManHours, r.HasOutput, r.HasComment,
			r.QualityScore, r.SourceFile, r.SourceSheet,
		)
		if err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ClearDaily removes all daily records.
func (s *Store) ClearDaily() error {
	return s.Exec("DELETE FROM daily_records")
}

// DailyQueryOptions filter daily record queries.
type DailyQueryOptions struct {
	DateFrom string
	DateTo   string
	Shift    string
	Machine  string
	Limit    int
	Offset   int
}

// GetDaily returns daily records matching the options, in (date, shift,
// machine) order.
func (s *Store) GetDaily(opts DailyQueryOptions) ([]*model.DailyRecord, error) {
	query := `SELECT date, day_of_week, week_start, week_end, shift, machine_name,
		input_item, actual_input, output_product, actual_output,
		machine_hours, man_hours, operator, comment,
		output_per_hour, labor_cost, total_expense, cost_per_pound,
		has_machine_hours, has_man_hours, has_output, has_comment,
		quality_score, source_file, source_sheet
		FROM daily_records WHERE 1=1`
	args := []interface{}{}

	if opts.DateFrom != "" {
		query += " AND date >= ?"
		args = append(args, opts.DateFrom)
	}
	if opts.DateTo != "" {
		query += " AND date <= ?"
		args = append(args, opts.DateTo)
	}
	if opts.Shift != "" {
		query += " AND shift = ?"
		args = append(args, opts.Shift)
	}
	if opts.Machine != "" {
		query += " AND machine_name = ?"
		args = append(args, opts.Machine)
	}

	query += " ORDER BY date, shift, machine_name"
	if opts.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, opts.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily records: %w", err)
	}
	defer rows.Close()

	var records []*model.DailyRecord
	for rows.Next() {
		r := &model.DailyRecord{}
		err := rows.Scan(
			&r.Date, &r.DayOfWeek, &r.WeekStart, &r.WeekEnd, &r.Shift, &r.MachineName,
			&r.InputItem, &r.ActualInput, &r.OutputProduct, &r.ActualOutput,
			&r.MachineHours, &r.ManHours, &r.Operator, &r.Comment,
			&r.OutputPerHour, &r.LaborCost, &r.TotalExpense, &r.CostPerPound,
			&r.HasMachineHours, &r.HasManHours, &r.HasOutput, &r.HasComment,
			&r.QualityScore, &r.SourceFile, &r.SourceSheet,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountDaily returns the number of stored daily records.
func (s *Store) CountDaily() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM daily_records").Scan(&n)
	return n, err
}
