package parser

// Quality score weights. The consistency bonus rewards agreement between
// "hours logged" and "output logged"; disagreement usually means a
// data-entry defect worth surfacing downstream.
const (
	weightMachineHours = 25
	weightManHours     = 25
	weightOutput       = 40
	weightConsistency  = 10
)

// QualityFlags are the presence indicators derived from one record's
// normalized quantities.
type QualityFlags struct {
	HasMachineHours bool
	HasManHours     bool
	HasOutput       bool
	HasComment      bool
}

// QualityOf derives the presence flags from raw quantities.
func QualityOf(machineHours, manHours, actualOutput float64, comment string) QualityFlags {
	return QualityFlags{
		HasMachineHours: machineHours > 0,
		HasManHours:     manHours > 0,
		HasOutput:       actualOutput > 0,
		HasComment:      comment != "",
	}
}

// Score returns the 0-100 completeness/consistency score.
func (q QualityFlags) Score() int {
	score := 0
	if q.HasMachineHours {
		score += weightMachineHours
	}
	if q.HasManHours {
		score += weightManHours
	}
	if q.HasOutput {
		score += weightOutput
	}
	if q.HasMachineHours == q.HasOutput {
		score += weightConsistency
	}
	return score
}
