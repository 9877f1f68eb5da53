package store

import (
	"fmt"

	"github.com/zabdulla/walton-production/internal/model"
)

// BatchInsertWeekRows inserts weekly-report rows inside a single
// transaction.
func (s *Store) BatchInsertWeekRows(records []*model.WeekRowRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO week_rows (
			period_start, period_end, shift, machine_name,
			machine_hours, man_hours, output_product, actual_output,
			output_per_hour, labor_cost, total_expense, cost_per_pound,
			source_file
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			r.PeriodStart, r.PeriodEnd, r.Shift, r.MachineName,
			r.MachineHours, r.ManHours, r.OutputProduct, r.ActualOutput,
			r.OutputPerHour, r.LaborCost, r.TotalExpense, r.CostPerPound,
			r.SourceFile,
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

// ClearWeekRows removes all weekly-report rows.
func (s *Store) ClearWeekRows() error {
	return s.Exec("DELETE FROM week_rows")
}

// GetWeekRows returns all weekly-report rows in (period, shift, machine)
// order.
func (s *Store) GetWeekRows() ([]*model.WeekRowRecord, error) {
	rows, err := s.db.Query(`SELECT period_start, period_end, shift, machine_name,
		machine_hours, man_hours, output_product, actual_output,
		output_per_hour, labor_cost, total_expense, cost_per_pound, source_file
		FROM week_rows ORDER BY period_start, shift, machine_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query week rows: %w", err)
	}
	defer rows.Close()

	var records []*model.WeekRowRecord
	for rows.Next() {
		r := &model.WeekRowRecord{}
		err := rows.Scan(
			&r.PeriodStart, &r.PeriodEnd, &r.Shift, &r.MachineName,
			&r.MachineHours, &r.ManHours, &r.OutputProduct, &r.ActualOutput,
			&r.OutputPerHour, &r.LaborCost, &r.TotalExpense, &r.CostPerPound,
			&r.SourceFile,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// BatchInsertWeeklyTotals inserts weekly machine totals inside a single
// transaction.
func (s *Store) BatchInsertWeeklyTotals(records []*model.WeeklyRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO weekly_totals (
			week_date, machine_name,
			total_machine_hours, total_man_hours, total_output,
			output_per_hour, labor_cost, total_expense, cost_per_pound,
			source_file
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			r.WeekDate, r.MachineName,
			r.TotalMachineHours, r.TotalManHours, r.TotalOutput,
			r.OutputPerHour, r.LaborCost, r.TotalExpense, r.CostPerPound,
			r.SourceFile,
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

// ClearWeeklyTotals removes all weekly totals.
func (s *Store) ClearWeeklyTotals() error {
	return s.Exec("DELETE FROM weekly_totals")
}

// GetWeeklyTotals returns all weekly totals in (week, machine) order.
func (s *Store) GetWeeklyTotals() ([]*model.WeeklyRecord, error) {
	rows, err := s.db.Query(`SELECT week_date, machine_name,
		total_machine_hours, total_man_hours, total_output,
		output_per_hour, labor_cost, total_expense, cost_per_pound, source_file
		FROM weekly_totals ORDER BY week_date, machine_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly totals: %w", err)
	}
	defer rows.Close()

	var records []*model.WeeklyRecord
	for rows.Next() {
		r := &model.WeeklyRecord{}
		err := rows.Scan(
			&r.WeekDate, &r.MachineName,
			&r.TotalMachineHours, &r.TotalManHours, &r.TotalOutput,
			&r.OutputPerHour, &r.LaborCost, &r.TotalExpense, &r.CostPerPound,
			&r.SourceFile,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
