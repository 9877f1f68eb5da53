package store

import (
	"fmt"

	"github.com/zabdulla/walton-production/internal/model"
)

// BatchInsertNotes inserts note records inside a single transaction.
func (s *Store) BatchInsertNotes(records []*model.NoteRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO notes (date, shift, machine_name, input_item, operator, note, category)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.Date, r.Shift, r.MachineName, r.InputItem, r.Operator, r.Note, r.Category); err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ClearNotes removes all notes.
func (s *Store) ClearNotes() error {
	return s.Exec("DELETE FROM notes")
}

// NoteQueryOptions filter note queries.
type NoteQueryOptions struct {
	Category string
	Machine  string
	Limit    int
}

// GetNotes returns notes matching the options in (date, shift, machine)
// order.
func (s *Store) GetNotes(opts NoteQueryOptions) ([]*model.NoteRecord, error) {
	query := `SELECT date, shift, machine_name, input_item, operator, note, category
		FROM notes WHERE 1=1`
	args := []interface{}{}

	if opts.Category != "" {
		query += " AND category = ?"
		args = append(args, opts.Category)
	}
	if opts.Machine != "" {
		query += " AND machine_name = ?"
		args = append(args, opts.Machine)
	}

	query += " ORDER BY date, shift, machine_name"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var records []*model.NoteRecord
	for rows.Next() {
		r := &model.NoteRecord{}
		if err := rows.Scan(&r.Date, &r.Shift, &r.MachineName, &r.InputItem, &r.Operator, &r.Note, &r.Category); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
