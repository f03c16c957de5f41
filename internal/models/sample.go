package models

import "math"

// Sample is one row of a room's zone-model output.
type Sample struct {
	Time           float64 `json:"time"`             // s
	LayerHeight    float64 `json:"layer_height"`     // m above floor
	CO2Lower       float64 `json:"co2_lower"`        // %
	CO2Upper       float64 `json:"co2_upper"`        // %
	COLower        float64 `json:"co_lower"`         // ppm
	COUpper        float64 `json:"co_upper"`         // ppm
	O2Lower        float64 `json:"o2_lower"`         // %
	O2Upper        float64 `json:"o2_upper"`         // %
	UpperLayerTemp float64 `json:"upper_layer_temp"` // °C
	LowerLayerTemp float64 `json:"lower_layer_temp"` // °C
}

// RoomSeries is the time-ordered sample sequence of a single room.
type RoomSeries []Sample

// Times returns the sample times in order.
func (rs RoomSeries) Times() []float64 {
	out := make([]float64, len(rs))
	for i, s := range rs {
		out[i] = s.Time
	}
	return out
}

// MaxTime returns the last sample time, or NaN for an empty series.
func (rs RoomSeries) MaxTime() float64 {
	if len(rs) == 0 {
		return math.NaN()
	}
	return rs[len(rs)-1].Time
}

// Clone returns a copy that can be modified without touching rs.
func (rs RoomSeries) Clone() RoomSeries {
	out := make(RoomSeries, len(rs))
	copy(out, rs)
	return out
}

// Lerp interpolates every field between a and b at time t.
func Lerp(a, b Sample, t float64) Sample {
	w := (t - a.Time) / (b.Time - a.Time)
	mix := func(x, y float64) float64 { return x + (y-x)*w }
	return Sample{
		Time:           t,
		LayerHeight:    mix(a.LayerHeight, b.LayerHeight),
		CO2Lower:       mix(a.CO2Lower, b.CO2Lower),
		CO2Upper:       mix(a.CO2Upper, b.CO2Upper),
		COLower:        mix(a.COLower, b.COLower),
		COUpper:        mix(a.COUpper, b.COUpper),
		O2Lower:        mix(a.O2Lower, b.O2Lower),
		O2Upper:        mix(a.O2Upper, b.O2Upper),
		UpperLayerTemp: mix(a.UpperLayerTemp, b.UpperLayerTemp),
		LowerLayerTemp: mix(a.LowerLayerTemp, b.LowerLayerTemp),
	}
}

// Undefined returns a sample at t whose measured fields are all NaN.
func Undefined(t float64) Sample {
	nan := math.NaN()
	return Sample{
		Time:           t,
		LayerHeight:    nan,
		CO2Lower:       nan,
		CO2Upper:       nan,
		COLower:        nan,
		COUpper:        nan,
		O2Lower:        nan,
		O2Upper:        nan,
		UpperLayerTemp: nan,
		LowerLayerTemp: nan,
	}
}
