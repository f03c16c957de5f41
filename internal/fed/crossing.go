package fed

import (
	"math"

	"tenability/internal/models"
)

// Report summarises a FED curve against a threshold.
type Report struct {
	Model        string           `json:"model"`
	Threshold    float64          `json:"threshold"`
	Crossed      bool             `json:"crossed"`
	CrossingTime float64          `json:"crossing_time,omitempty"` // s, valid when Crossed
	MaxFED       float64          `json:"max_fed"`
	Segments     []models.Segment `json:"segments,omitempty"`
}

// Crossing returns the time at which s first reaches threshold, interpolated
// linearly between the bracketing points. ok is false when s never reaches it.
func Crossing(s models.FEDSeries, threshold float64) (t float64, ok bool) {
	for k, v := range s.FED {
		if math.IsNaN(v) || v < threshold {
			continue
		}
		if k == 0 {
			return s.Times[0], true
		}
		f0, f1 := s.FED[k-1], v
		t0, t1 := s.Times[k-1], s.Times[k]
		if f1 == f0 {
			return t1, true
		}
		return t0 + (threshold-f0)/(f1-f0)*(t1-t0), true
	}
	return 0, false
}

// Summarize builds the threshold report for a computed series.
func Summarize(model string, s models.FEDSeries, segments []models.Segment, threshold float64) Report {
	r := Report{Model: model, Threshold: threshold, MaxFED: s.Max(), Segments: segments}
	if t, ok := Crossing(s, threshold); ok {
		r.Crossed = true
		r.CrossingTime = t
	}
	return r
}
