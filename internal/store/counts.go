package store

func (s *Store) countTable(table string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
	return n, err
}

// CountNotes returns the number of stored notes.
func (s *Store) CountNotes() (int, error) {
	return s.countTable("notes")
}

// CountWeekRows returns the number of stored weekly-report rows.
func (s *Store) CountWeekRows() (int, error) {
	return s.countTable("week_rows")
}

// CountWeeklyTotals returns the number of stored weekly totals.
func (s *Store) CountWeeklyTotals() (int, error) {
	return s.countTable("weekly_totals")
}
