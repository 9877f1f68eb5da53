package aggregator

import (
	"fmt"

	"github.com/zabdulla/walton-production/internal/store"
)

// SaveDataset replaces the stored tables a run mode owns with the run's
// dataset. Tables belonging to other modes are left alone, so daily and
// weekly batches can be refreshed independently.
func SaveDataset(st *store.Store, ds *Dataset, mode Mode) error {
	switch mode {
	case ModeDaily:
		if err := st.ClearDaily(); err != nil {
			return fmt.Errorf("failed to clear daily records: %w", err)
		}
		if err := st.ClearNotes(); err != nil {
			return fmt.Errorf("failed to clear notes: %w", err)
		}
		if err := st.BatchInsertDaily(ds.Daily); err != nil {
			return err
		}
		return st.BatchInsertNotes(ds.Notes)
	case ModeWeekly:
		if err := st.ClearWeekRows(); err != nil {
			return fmt.Errorf("failed to clear week rows: %w", err)
		}
		return st.BatchInsertWeekRows(ds.WeekRows)
	case ModeTotals:
		if err := st.ClearWeeklyTotals(); err != nil {
			return fmt.Errorf("failed to clear weekly totals: %w", err)
		}
		return st.BatchInsertWeeklyTotals(ds.WeeklyTotals)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}
