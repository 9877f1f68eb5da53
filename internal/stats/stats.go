// Package stats builds day-level and per-machine rollups of the aggregated
// daily records for dashboard consumption.
package stats

import (
	"sort"
	"time"

	"github.com/zabdulla/walton-production/internal/model"
)

// Day completeness status. A day with no hours at all is treated as a day
// the supervisor never entered, not as a zero-production day.
const (
	StatusComplete = "complete"
	StatusPartial  = "partial"
	StatusMissing  = "missing"
)

// DaySummary rolls all machines up to one row per date.
type DaySummary struct {
	Date      string `json:"date"`
	DayName   string `json:"dayName"`
	WeekStart string `json:"weekStart"`
	Month     string `json:"month"`

	TotalOutput       float64 `json:"totalOutput"`
	TotalMachineHours float64 `json:"totalMachineHours"`
	TotalManHours     float64 `json:"totalManHours"`
	Records           int     `json:"records"`
	AvgQuality        float64 `json:"avgQuality"`
	MachinesActive    int     `json:"machinesActive"`

	Status string `json:"status"`
}

// MachineDay rolls records up to one row per date and machine.
type MachineDay struct {
	Date        string `json:"date"`
	WeekStart   string `json:"weekStart"`
	Month       string `json:"month"`
	MachineName string `json:"machineName"`

	ActualOutput float64 `json:"actualOutput"`
	MachineHours float64 `json:"machineHours"`
	ManHours     float64 `json:"manHours"`
	AvgQuality   float64 `json:"avgQuality"`
}

// DailySummaries aggregates records by date, sorted ascending.
func DailySummaries(records []*model.DailyRecord) []*DaySummary {
	type acc struct {
		sum      *DaySummary
		quality  int
		machines map[string]struct{}
		hasHours bool
		hasOut   bool
	}
	byDate := map[string]*acc{}

	for _, r := range records {
		a, ok := byDate[r.Date]
		if !ok {
			a = &acc{
				sum: &DaySummary{
					Date:      r.Date,
					DayName:   dayName(r.Date),
					WeekStart: weekStart(r.Date),
					Month:     monthOf(r.Date),
				},
				machines: map[string]struct{}{},
			}
			byDate[r.Date] = a
		}
		a.sum.TotalOutput += r.ActualOutput
		a.sum.TotalMachineHours += r.MachineHours
		a.sum.TotalManHours += r.ManHours
		a.sum.Records++
		a.quality += r.QualityScore
		a.machines[r.MachineName] = struct{}{}
		a.hasHours = a.hasHours || r.HasMachineHours
		a.hasOut = a.hasOut || r.HasOutput
	}

	summaries := make([]*DaySummary, 0, len(byDate))
	for _, a := range byDate {
		s := a.sum
		s.MachinesActive = len(a.machines)
		if s.Records > 0 {
			s.AvgQuality = float64(a.quality) / float64(s.Records)
		}
		s.Status = StatusComplete
		if s.TotalOutput == 0 || !a.hasOut {
			s.Status = StatusPartial
		}
		if s.TotalMachineHours == 0 && s.TotalManHours == 0 {
			s.Status = StatusMissing
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Date < summaries[j].Date })
	return summaries
}

// MachineDailySummaries aggregates records by date and machine, sorted by
// (date, machine).
func MachineDailySummaries(records []*model.DailyRecord) []*MachineDay {
	type key struct {
		date    string
		machine string
	}
	type acc struct {
		sum     *MachineDay
		quality int
		count   int
	}
	byKey := map[key]*acc{}

	for _, r := range records {
		k := key{date: r.Date, machine: r.MachineName}
		a, ok := byKey[k]
		if !ok {
			a = &acc{sum: &MachineDay{
				Date:        r.Date,
				WeekStart:   weekStart(r.Date),
				Month:       monthOf(r.Date),
				MachineName: r.MachineName,
			}}
			byKey[k] = a
		}
		a.sum.ActualOutput += r.ActualOutput
		a.sum.MachineHours += r.MachineHours
		a.sum.ManHours += r.ManHours
		a.quality += r.QualityScore
		a.count++
	}

	days := make([]*MachineDay, 0, len(byKey))
	for _, a := range byKey {
		if a.count > 0 {
			a.sum.AvgQuality = float64(a.quality) / float64(a.count)
		}
		days = append(days, a.sum)
	}

	sort.Slice(days, func(i, j int) bool {
		if days[i].Date != days[j].Date {
			return days[i].Date < days[j].Date
		}
		return days[i].MachineName < days[j].MachineName
	})
	return days
}

// NotesByDate groups notes by date for calendar rendering.
func NotesByDate(notes []*model.NoteRecord) map[string][]*model.NoteRecord {
	byDate := map[string][]*model.NoteRecord{}
	for _, n := range notes {
		byDate[n.Date] = append(byDate[n.Date], n)
	}
	return byDate
}

func parseDate(date string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func dayName(date string) string {
	t, ok := parseDate(date)
	if !ok {
		return ""
	}
	return t.Format("Mon")
}

// weekStart returns the Monday of the date's week.
func weekStart(date string) string {
	t, ok := parseDate(date)
	if !ok {
		return ""
	}
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format("2006-01-02")
}

func monthOf(date string) string {
	t, ok := parseDate(date)
	if !ok {
		return ""
	}
	return t.Format("2006-01")
}
