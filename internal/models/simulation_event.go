package models

import "time"

// Event types scraped from the model log.
const (
	EventSprinkler     = "SPRINKLER"
	EventSmokeDetector = "SMOKE_DETECTOR"
)

// SimulationEvent is a device activation found in the event log.
type SimulationEvent struct {
	EventID      string  `json:"event_id"`
	SimulationID string  `json:"simulation_id,omitempty"`
	Type         string  `json:"type"` // SPRINKLER | SMOKE_DETECTOR
	Name         string  `json:"name"` // e.g. "Sprinkler 2"
	Time         float64 `json:"time"` // s since ignition
	Description  string  `json:"description,omitempty"`
}

// Simulation describes an imported results location.
type Simulation struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SourcePath string    `json:"source_path"`
	EndTime    float64   `json:"end_time"` // s
	Rooms      int       `json:"rooms"`
	ImportedAt time.Time `json:"imported_at"`
	// CreatedBy is the importing user; 0 marks a shared import visible to every user.
	CreatedBy int `json:"created_by"`
}
