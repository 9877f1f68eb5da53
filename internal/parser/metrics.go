package parser

// Rates are the batch-wide cost constants applied uniformly to every
// record in a run.
type Rates struct {
	HourlyRate         float64
	OverheadMultiplier float64
}

// DefaultRates match the facility's nominal labor rate with no overhead.
func DefaultRates() Rates {
	return Rates{HourlyRate: 24, OverheadMultiplier: 1.0}
}

// Metrics are the derived efficiency/cost figures for one record.
type Metrics struct {
	OutputPerHour float64
	LaborCost     float64
	TotalExpense  float64
	CostPerPound  float64
}

// ComputeMetrics derives the analysis figures from normalized quantities.
// Every division is guarded: a zero denominator yields 0, never an error
// or infinity.
func ComputeMetrics(machineHours, manHours, actualOutput float64, rates Rates) Metrics {
	m := Metrics{
		LaborCost: manHours * rates.HourlyRate,
	}
	m.TotalExpense = m.LaborCost * rates.OverheadMultiplier
	if machineHours > 0 {
		m.OutputPerHour = actualOutput / machineHours
	}
	if actualOutput > 0 {
		m.CostPerPound = m.TotalExpense / actualOutput
	}
	return m
}
