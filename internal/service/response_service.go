package service

import (
	"tenability/internal/fed"
	"tenability/internal/models"
)

// PathRequest describes an egress path. Nil numeric fields take configured defaults.
type PathRequest struct {
	Rooms            []string  // visited in order
	TransitionTimes  []float64 // leave times; the last may be omitted
	MonitoringHeight *float64  // m above floor
	Threshold        *float64
}

// PathResult is a computed dose curve with its verdict.
type PathResult struct {
	SimulationID string
	Model        string
	Series       models.FEDSeries
	Report       fed.Report
	Summary      string
	// Events are activations up to the end of the path.
	Events []models.SimulationEvent
}

// RoomResult is the dose curve of an occupant who stays in one room.
type RoomResult struct {
	Room   string
	Series models.FEDSeries
	Report fed.Report
}

// LogFilter supports event filtering by simulation time range and type.
type LogFilter struct {
	SimulationID string
	From         *float64 // inclusive, s; nil means no lower bound
	To           *float64 // inclusive, s; nil means no upper bound
	Type         string   // "", "SPRINKLER", "SMOKE_DETECTOR"
}

// ReplayFrame is one replayed sample plus the activations since the previous frame.
type ReplayFrame struct {
	Room   string                   `json:"room"`
	Index  int                      `json:"index"`
	Sample models.Sample            `json:"sample"`
	Events []models.SimulationEvent `json:"events,omitempty"`
}
