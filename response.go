package tenability

import (
	"bytes"
	"math"
	"strconv"
	"time"

	"tenability/internal/fed"
	"tenability/internal/models"
)

// Number is a float64 whose undefined values (NaN, ±Inf) travel as JSON null.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

func (n *Number) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*n = Number(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Float returns n as a float64.
func (n Number) Float() float64 { return float64(n) }

func numbers(in []float64) []Number {
	out := make([]Number, len(in))
	for i, v := range in {
		out[i] = Number(v)
	}
	return out
}

// Simulation is an imported results set.
type Simulation struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SourcePath string    `json:"source_path"`
	EndTime    Number    `json:"end_time"` // s
	Rooms      int       `json:"rooms"`
	ImportedAt time.Time `json:"imported_at"`
	// Shared imports, loaded at startup, have no owner.
	CreatedBy int  `json:"created_by,omitempty"`
	Shared    bool `json:"shared"`
}

func NewSimulation(s models.Simulation) Simulation {
	return Simulation{
		ID:         s.ID,
		Name:       s.Name,
		SourcePath: s.SourcePath,
		EndTime:    Number(s.EndTime),
		Rooms:      s.Rooms,
		ImportedAt: s.ImportedAt,
		CreatedBy:  s.CreatedBy,
		Shared:     s.CreatedBy == 0,
	}
}

// Sample is one zone-model row; missing cells are null.
type Sample struct {
	Time           Number `json:"time"`
	LayerHeight    Number `json:"layer_height"`
	CO2Lower       Number `json:"co2_lower"`
	CO2Upper       Number `json:"co2_upper"`
	COLower        Number `json:"co_lower"`
	COUpper        Number `json:"co_upper"`
	O2Lower        Number `json:"o2_lower"`
	O2Upper        Number `json:"o2_upper"`
	UpperLayerTemp Number `json:"upper_layer_temp"`
	LowerLayerTemp Number `json:"lower_layer_temp"`
}

func NewSample(s models.Sample) Sample {
	return Sample{
		Time:           Number(s.Time),
		LayerHeight:    Number(s.LayerHeight),
		CO2Lower:       Number(s.CO2Lower),
		CO2Upper:       Number(s.CO2Upper),
		COLower:        Number(s.COLower),
		COUpper:        Number(s.COUpper),
		O2Lower:        Number(s.O2Lower),
		O2Upper:        Number(s.O2Upper),
		UpperLayerTemp: Number(s.UpperLayerTemp),
		LowerLayerTemp: Number(s.LowerLayerTemp),
	}
}

// Variable is one results column of a room; empty cells are null.
type Variable struct {
	Room   string   `json:"room"`
	Name   string   `json:"name"`
	Times  []Number `json:"times"`
	Values []Number `json:"values"`
}

func NewVariable(room string, v models.Variable) Variable {
	return Variable{Room: room, Name: v.Name, Times: numbers(v.Times), Values: numbers(v.Values)}
}

// Segment is a room occupancy window.
type Segment struct {
	Room  string `json:"room"`
	Start Number `json:"start"`
	End   Number `json:"end"`
}

// Verdict is the threshold report of a dose curve.
type Verdict struct {
	Model        string    `json:"model"`
	Threshold    Number    `json:"threshold"`
	Crossed      bool      `json:"crossed"`
	CrossingTime *Number   `json:"crossing_time,omitempty"` // s
	MaxFED       Number    `json:"max_fed"`
	Segments     []Segment `json:"segments,omitempty"`
}

func NewVerdict(r fed.Report) Verdict {
	v := Verdict{
		Model:     r.Model,
		Threshold: Number(r.Threshold),
		Crossed:   r.Crossed,
		MaxFED:    Number(r.MaxFED),
	}
	if r.Crossed {
		t := Number(r.CrossingTime)
		v.CrossingTime = &t
	}
	for _, s := range r.Segments {
		v.Segments = append(v.Segments, Segment{Room: s.Room, Start: Number(s.Start), End: Number(s.End)})
	}
	return v
}

// FEDCurve is a cumulative dose curve; undefined points are null.
type FEDCurve struct {
	Times []Number `json:"times"`
	FED   []Number `json:"fed"`
}

func NewFEDCurve(s models.FEDSeries) FEDCurve {
	return FEDCurve{Times: numbers(s.Times), FED: numbers(s.FED)}
}

// PathResponse is the result of a path integration.
type PathResponse struct {
	SimulationID string                   `json:"simulation_id,omitempty"`
	Model        string                   `json:"model"`
	Curve        FEDCurve                 `json:"curve"`
	Report       Verdict                  `json:"report"`
	Summary      string                   `json:"summary"`
	Events       []models.SimulationEvent `json:"events,omitempty"`
}

// RoomResponse is the single-room curve of one room.
type RoomResponse struct {
	Room   string   `json:"room"`
	Curve  FEDCurve `json:"curve"`
	Report Verdict  `json:"report"`
}

// ReplayFrame is one replayed sample sent over the websocket.
type ReplayFrame struct {
	Room   string                   `json:"room"`
	Index  int                      `json:"index"`
	Sample Sample                   `json:"sample"`
	Events []models.SimulationEvent `json:"events,omitempty"`
}
