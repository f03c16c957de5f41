package fed

import (
	"fmt"
	"sort"

	"tenability/internal/models"
)

// SeriesSource gives read access to per-room series.
type SeriesSource interface {
	Get(room string) (models.RoomSeries, error)
	MaxTime(room string) (float64, error)
}

// GeometrySource gives read access to room dimensions.
type GeometrySource interface {
	Geometry(room string) (models.RoomGeometry, error)
}

// Store is an immutable in-memory room series store.
type Store struct {
	series   map[string]models.RoomSeries
	geometry map[string]models.RoomGeometry
	order    []string
}

var (
	_ SeriesSource   = (*Store)(nil)
	_ GeometrySource = (*Store)(nil)
)

// NewStore validates and takes ownership of the given series and geometry.
// Rooms are listed in geometry order, then any remaining series by name.
func NewStore(series map[string]models.RoomSeries, geometry []models.RoomGeometry) (*Store, error) {
	s := &Store{
		series:   make(map[string]models.RoomSeries, len(series)),
		geometry: make(map[string]models.RoomGeometry, len(geometry)),
	}
	for room, rs := range series {
		for i := 1; i < len(rs); i++ {
			if !(rs[i].Time > rs[i-1].Time) {
				return nil, fmt.Errorf("room %q at sample %d (t=%g): %w", room, i, rs[i].Time, ErrUnorderedSeries)
			}
		}
		s.series[room] = rs
	}

	seen := make(map[string]struct{}, len(series))
	for _, g := range geometry {
		s.geometry[g.Name] = g
		if _, ok := s.series[g.Name]; ok {
			if _, dup := seen[g.Name]; !dup {
				s.order = append(s.order, g.Name)
				seen[g.Name] = struct{}{}
			}
		}
	}
	rest := make([]string, 0)
	for room := range s.series {
		if _, ok := seen[room]; !ok {
			rest = append(rest, room)
		}
	}
	sort.Strings(rest)
	s.order = append(s.order, rest...)
	return s, nil
}

// Get returns the series of a room. The result must not be modified.
func (s *Store) Get(room string) (models.RoomSeries, error) {
	rs, ok := s.series[room]
	if !ok {
		return nil, fmt.Errorf("%q: %w", room, ErrRoomNotFound)
	}
	return rs, nil
}

// MaxTime returns the final sample time of a room.
func (s *Store) MaxTime(room string) (float64, error) {
	rs, err := s.Get(room)
	if err != nil {
		return 0, err
	}
	return rs.MaxTime(), nil
}

// Geometry returns the dimensions of a room.
func (s *Store) Geometry(room string) (models.RoomGeometry, error) {
	g, ok := s.geometry[room]
	if !ok {
		return models.RoomGeometry{}, fmt.Errorf("geometry for %q: %w", room, ErrRoomNotFound)
	}
	return g, nil
}

// Rooms lists the rooms that have a series.
func (s *Store) Rooms() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Geometries lists the geometry of every room known to the store.
func (s *Store) Geometries() []models.RoomGeometry {
	out := make([]models.RoomGeometry, 0, len(s.geometry))
	for _, g := range s.geometry {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}
