package brisk

import (
	"fmt"

	"tenability/internal/fed"
	"tenability/internal/logger"
	"tenability/internal/models"
)

// Simulation is a fully loaded B-RISK results set.
type Simulation struct {
	Name     string
	Path     string
	Geometry []models.RoomGeometry
	Store    *fed.Store
	// Variables are the results columns outside the FED inputs, per room.
	Variables map[string]models.RoomVariables
	Events    []models.SimulationEvent
	LogLines  []string
	Start     float64
	End       float64
}

// Loader reads results sets from disk.
type Loader struct {
	log *logger.Logger
}

// NewLoader returns a loader; log may be nil.
func NewLoader(log *logger.Logger) *Loader {
	return &Loader{log: log}
}

// Load reads the run log, the input file and the results workbook at path.
func (l *Loader) Load(path string) (*Simulation, error) {
	src, err := OpenSource(path)
	if err != nil {
		return nil, err
	}

	rtf, err := src.ReadFile(SuffixLog)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	lines := LogLines(rtf)
	events := ParseEvents(lines)
	l.infow("read log", "path", src.Path(), "lines", len(lines))
	for _, e := range events {
		l.infow("found event", "name", e.Name, "time_s", e.Time)
	}

	xmlData, err := src.ReadFile(SuffixInput)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	geometry, err := ParseInput(xmlData)
	if err != nil {
		return nil, err
	}
	l.infow("read input", "rooms", len(geometry))

	xlsx, err := src.ReadFile(SuffixResults)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	res, err := ReadResults(xlsx, geometry)
	if err != nil {
		return nil, err
	}
	l.infow("read results", "from_s", res.Start, "to_s", res.End, "rooms", len(res.Rooms))

	store, err := fed.NewStore(res.Rooms, geometry)
	if err != nil {
		return nil, err
	}

	return &Simulation{
		Name:      src.Name(),
		Path:      src.Path(),
		Geometry:  geometry,
		Store:     store,
		Variables: res.Variables,
		Events:    events,
		LogLines:  lines,
		Start:     res.Start,
		End:       res.End,
	}, nil
}

// Variable returns one results column of room, either a Sample field or one
// of the room's other variables.
func (s *Simulation) Variable(room, name string) (models.Variable, error) {
	rs, err := s.Store.Get(room)
	if err != nil {
		return models.Variable{}, err
	}
	if v, ok := SampleVariable(rs, name); ok {
		return v, nil
	}
	if v, ok := s.Variables[room].Find(name); ok {
		return v, nil
	}
	return models.Variable{}, fmt.Errorf("%q in room %q: %w", name, room, ErrVariableNotFound)
}

// VariableNames lists what Variable accepts for room.
func (s *Simulation) VariableNames(room string) []string {
	return append(append([]string(nil), SampleVariables...), s.Variables[room].Names()...)
}

func (l *Loader) infow(msg string, kv ...interface{}) {
	if l.log != nil {
		l.log.Infow(msg, kv...)
	}
}
