package models

// FED model names.
const (
	ModelCO      = "co"
	ModelThermal = "thermal"
)

// FEDSeries is a cumulative dose curve. Times and FED have equal length.
type FEDSeries struct {
	Times []float64 `json:"times"`
	FED   []float64 `json:"fed"`
}

// Len returns the number of points.
func (s FEDSeries) Len() int { return len(s.Times) }

// Max returns the largest FED value (0 for an empty series).
func (s FEDSeries) Max() float64 {
	m := 0.0
	for _, v := range s.FED {
		if v > m {
			m = v
		}
	}
	return m
}

// Segment is the occupancy window of one room along a path.
type Segment struct {
	Room  string  `json:"room"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}
