package fed

import (
	"fmt"

	"tenability/internal/models"
)

const (
	DefaultMonitoringHeight = 2.0 // m
	DefaultThreshold        = 0.3
)

// Params tune a path computation.
type Params struct {
	MonitoringHeight float64 // m above floor
	Threshold        float64 // FED reported as the crossing level
	// StrictRange rejects boundaries outside a room's series instead of
	// integrating undefined values.
	StrictRange bool
}

// DefaultParams returns a 2 m monitoring height and a 0.3 threshold.
func DefaultParams() Params {
	return Params{MonitoringHeight: DefaultMonitoringHeight, Threshold: DefaultThreshold}
}

// Path is an ordered walk through rooms. TransitionTimes holds the times the
// occupant leaves each room; the last one may be omitted.
type Path struct {
	Rooms           []string  `json:"rooms"`
	TransitionTimes []float64 `json:"transition_times"`
}

// Boundaries returns the R+1 segment boundaries of p, starting at 0. When the
// final transition is omitted, the end of the first room's series closes the
// path, whichever room comes last.
func Boundaries(src SeriesSource, p Path) ([]float64, error) {
	if len(p.Rooms) == 0 {
		return nil, fmt.Errorf("no rooms: %w", ErrInvalidPath)
	}
	diff := len(p.Rooms) - len(p.TransitionTimes)
	if diff != 0 && diff != 1 {
		return nil, fmt.Errorf("%d rooms with %d transition times: %w", len(p.Rooms), len(p.TransitionTimes), ErrInvalidPath)
	}

	out := make([]float64, 0, len(p.Rooms)+1)
	out = append(out, 0)
	out = append(out, p.TransitionTimes...)
	if diff == 1 {
		end, err := src.MaxTime(p.Rooms[0])
		if err != nil {
			return nil, err
		}
		out = append(out, end)
	}

	for i := 1; i < len(out); i++ {
		if out[i] < out[i-1] {
			return nil, fmt.Errorf("boundary %d (%g s) precedes boundary %d (%g s): %w", i, out[i], i-1, out[i-1], ErrInvalidPath)
		}
	}
	return out, nil
}

// Segments returns the occupancy window of every room on p.
func Segments(src SeriesSource, p Path) ([]models.Segment, error) {
	b, err := Boundaries(src, p)
	if err != nil {
		return nil, err
	}
	out := make([]models.Segment, len(p.Rooms))
	for i, room := range p.Rooms {
		out[i] = models.Segment{Room: room, Start: b[i], End: b[i+1]}
	}
	return out, nil
}

// Layer is the side of the smoke interface the monitor sits in.
type Layer int

const (
	UpperLayer Layer = iota
	LowerLayer
)

func (l Layer) String() string {
	if l == LowerLayer {
		return "lower"
	}
	return "upper"
}

// Classify places the monitoring height against the step-average layer height.
// The monitor is in the lower layer only when the interface is strictly above it.
func Classify(a, b models.Sample, monitoringHeight float64) Layer {
	if mean(a.LayerHeight, b.LayerHeight) > monitoringHeight {
		return LowerLayer
	}
	return UpperLayer
}

// stepFunc returns the dose increment between two consecutive samples of a room.
type stepFunc func(a, b models.Sample) float64

// stepFactory builds the step function for one room of the path.
type stepFactory func(room string) (stepFunc, error)

// integrate runs the shared segment walk. first is the index of the first
// sample pair walked in each segment.
func integrate(src SeriesSource, p Path, prm Params, first int, newStep stepFactory) (models.FEDSeries, error) {
	b, err := Boundaries(src, p)
	if err != nil {
		return models.FEDSeries{}, err
	}

	out := models.FEDSeries{Times: []float64{0}, FED: []float64{0}}
	total := 0.0
	for i, room := range p.Rooms {
		rs, err := src.Get(room)
		if err != nil {
			return models.FEDSeries{}, err
		}
		from, to := b[i], b[i+1]
		if prm.StrictRange {
			for _, t := range [...]float64{from, to} {
				if !inRange(rs, t) {
					return models.FEDSeries{}, fmt.Errorf("room %q at %g s: %w", room, t, ErrOutOfRange)
				}
			}
		}
		step, err := newStep(room)
		if err != nil {
			return models.FEDSeries{}, err
		}

		work := EnsureSample(rs.Clone(), from)
		work = EnsureSample(work, to)
		seg := window(work, from, to)

		for k := first; k < len(seg)-1; k++ {
			total += step(seg[k], seg[k+1])
			if total > 1 {
				total = 1
			}
			out.Times = append(out.Times, seg[k+1].Time)
			out.FED = append(out.FED, total)
		}
	}
	return out, nil
}

func mean(a, b float64) float64 { return 0.5 * (a + b) }

// minutes converts the time between two samples from seconds to minutes.
func minutes(a, b models.Sample) float64 { return b.Time/60 - a.Time/60 }
