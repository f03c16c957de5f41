package models

// RoomGeometry holds the static dimensions of a room from the input file.
type RoomGeometry struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Length    float64 `json:"length"`     // m
	Width     float64 `json:"width"`      // m
	MinHeight float64 `json:"min_height"` // m
	MaxHeight float64 `json:"max_height"` // m
}
