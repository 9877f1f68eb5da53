package model

// Shift is the labeled work period a report covers, taken from the
// file name rather than row content.
type Shift string

const (
	ShiftFirst       Shift = "1st"
	ShiftSecond      Shift = "2nd"
	ShiftThird       Shift = "3rd"
	ShiftUnspecified Shift = "unspecified"
)

// SourceFile is parsed once from the report file name and never
// mutated afterwards. Dates are normalized to YYYY-MM-DD.
type SourceFile struct {
	FileName    string `json:"fileName"`
	Shift       Shift  `json:"shift"`
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
}

// DailyRecord is one row of activity for one machine on one date and shift.
// Derived fields and quality flags are populated at extraction time.
type DailyRecord struct {
	Date        string `json:"date"`
	DayOfWeek   string `json:"dayOfWeek"`
	WeekStart   string `json:"weekStart"`
	WeekEnd     string `json:"weekEnd"`
	Shift       Shift  `json:"shift"`
	MachineName string `json:"machineName"`

	InputItem     string  `json:"inputItem"`
	ActualInput   float64 `json:"actualInput"`
	OutputProduct string  `json:"outputProduct"`
	ActualOutput  float64 `json:"actualOutput"`
	MachineHours  float64 `json:"machineHours"`
	ManHours      float64 `json:"manHours"`
	Operator      string  `json:"operator"`
	Comment       string  `json:"comment"`

	OutputPerHour float64 `json:"outputPerHour"`
	LaborCost     float64 `json:"laborCost"`
	TotalExpense  float64 `json:"totalExpense"`
	CostPerPound  float64 `json:"costPerPound"`

	HasMachineHours bool `json:"hasMachineHours"`
	HasManHours     bool `json:"hasManHours"`
	HasOutput       bool `json:"hasOutput"`
	HasComment      bool `json:"hasComment"`
	QualityScore    int  `json:"qualityScore"`

	SourceFile  string `json:"sourceFile"`
	SourceSheet string `json:"sourceSheet"`
}

// WeekRowRecord is one weekly-report row for one machine over a reporting
// period. Same shape of quantities as DailyRecord but sourced from the
// "Weekly Report" sheet, which carries week-level figures per row.
type WeekRowRecord struct {
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
	Shift       Shift  `json:"shift"`
	MachineName string `json:"machineName"`

	MachineHours  float64 `json:"machineHours"`
	ManHours      float64 `json:"manHours"`
	OutputProduct string  `json:"outputProduct"`
	ActualOutput  float64 `json:"actualOutput"`

	OutputPerHour float64 `json:"outputPerHour"`
	LaborCost     float64 `json:"laborCost"`
	TotalExpense  float64 `json:"totalExpense"`
	CostPerPound  float64 `json:"costPerPound"`

	SourceFile string `json:"sourceFile"`
}

// WeeklyRecord holds the pre-aggregated machine totals lifted from the
// "<MACHINE> - TOTALS" rows of a weekly report: one record per machine per
// reporting week.
type WeeklyRecord struct {
	WeekDate    string `json:"weekDate"`
	MachineName string `json:"machineName"`

	TotalMachineHours float64 `json:"totalMachineHours"`
	TotalManHours     float64 `json:"totalManHours"`
	TotalOutput       float64 `json:"totalOutput"`

	OutputPerHour float64 `json:"outputPerHour"`
	LaborCost     float64 `json:"laborCost"`
	TotalExpense  float64 `json:"totalExpense"`
	CostPerPound  float64 `json:"costPerPound"`

	SourceFile string `json:"sourceFile"`
}

// NoteRecord is a supervisor comment lifted out of a daily record. It is an
// independent derived entity; edits to it never flow back to the record.
type NoteRecord struct {
	Date        string `json:"date"`
	Shift       Shift  `json:"shift"`
	MachineName string `json:"machineName"`
	InputItem   string `json:"inputItem"`
	Operator    string `json:"operator"`
	Note        string `json:"note"`
	Category    string `json:"category"`
}
