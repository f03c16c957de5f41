package fed

import (
	"math"
	"testing"

	"tenability/internal/models"
)

const eps = 1e-12

// uniformRoom builds a room sampled every 60 s up to end with constant conditions.
func uniformRoom(end float64, s models.Sample) models.RoomSeries {
	var out models.RoomSeries
	for t := 0.0; t <= end; t += 60 {
		row := s
		row.Time = t
		out = append(out, row)
	}
	return out
}

// smokyUpper is an upper-layer exposure: the interface sits on the floor.
func smokyUpper(coPPM float64) models.Sample {
	return models.Sample{
		LayerHeight: 0,
		COUpper:     coPPM, COLower: 0,
		CO2Upper: 0, CO2Lower: 0,
		O2Upper: 20.9, O2Lower: 20.9,
		UpperLayerTemp: 20, LowerLayerTemp: 20,
	}
}

func mustStore(t *testing.T, series map[string]models.RoomSeries, geom ...models.RoomGeometry) *Store {
	t.Helper()
	s, err := NewStore(series, geom)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func near(a, b float64) bool { return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b)) }

func assertFloats(t *testing.T, label string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len=%d want %d (got=%v)", label, len(got), len(want), got)
	}
	for i := range want {
		if !near(got[i], want[i]) {
			t.Fatalf("%s[%d]=%v want %v (got=%v)", label, i, got[i], want[i], got)
		}
	}
}

// assertWellFormed checks the invariants every FED curve must hold.
func assertWellFormed(t *testing.T, s models.FEDSeries) {
	t.Helper()
	if s.Len() == 0 || len(s.FED) != len(s.Times) {
		t.Fatalf("malformed series: %+v", s)
	}
	if s.Times[0] != 0 || s.FED[0] != 0 {
		t.Fatalf("series must start at (0,0), got (%v,%v)", s.Times[0], s.FED[0])
	}
	for i := 1; i < s.Len(); i++ {
		if !(s.Times[i] > s.Times[i-1]) {
			t.Fatalf("times not strictly increasing at %d: %v", i, s.Times)
		}
		if s.FED[i] < s.FED[i-1] {
			t.Fatalf("fed decreased at %d: %v", i, s.FED)
		}
		if s.FED[i] < 0 || s.FED[i] > 1 {
			t.Fatalf("fed out of [0,1] at %d: %v", i, s.FED[i])
		}
	}
}
