package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tenability/internal/brisk"
	"tenability/internal/fed"
	"tenability/internal/logger"
	"tenability/internal/metrics"
	"tenability/internal/models"
	"tenability/internal/repository"
)

// Loader reads a results location from disk.
type Loader interface {
	Load(path string) (*brisk.Simulation, error)
}

// SimulationService persists imports and keeps their stores in memory.
type SimulationService struct {
	repo    repository.SimulationRepo
	loader  Loader
	metrics *metrics.Metrics
	log     *logger.Logger

	mu     sync.RWMutex
	stores map[string]cachedStore
}

type cachedStore struct {
	store *fed.Store
	owner int
	path  string
}

func NewSimulationService(repo repository.SimulationRepo, loader Loader, m *metrics.Metrics, log *logger.Logger) *SimulationService {
	return &SimulationService{
		repo:    repo,
		loader:  loader,
		metrics: m,
		log:     log,
		stores:  make(map[string]cachedStore),
	}
}

// ImportSimulation loads path and stores it for the user in ctx, replacing
// that user's earlier import of the same location.
func (s *SimulationService) ImportSimulation(ctx context.Context, path string) (models.Simulation, error) {
	start := time.Now()
	sim, err := s.importSimulation(ctx, path)
	s.metrics.Import(time.Since(start), err)
	if err != nil {
		if s.log != nil {
			s.log.Warnw("import failed", "path", path, "err", err)
		}
		return models.Simulation{}, err
	}
	if s.log != nil {
		s.log.Infow("imported simulation", "id", sim.ID, "name", sim.Name, "rooms", sim.Rooms, "end_s", sim.EndTime, "user", sim.CreatedBy)
	}
	return sim, nil
}

func (s *SimulationService) importSimulation(ctx context.Context, path string) (models.Simulation, error) {
	loaded, err := s.loader.Load(path)
	if err != nil {
		return models.Simulation{}, fmt.Errorf("load %q: %w", path, err)
	}

	rooms := loaded.Store.Rooms()
	series := make(map[string]models.RoomSeries, len(rooms))
	for _, room := range rooms {
		rs, err := loaded.Store.Get(room)
		if err != nil {
			return models.Simulation{}, err
		}
		series[room] = rs
	}

	owner := UserFrom(ctx)
	id, err := s.repo.Save(ctx, repository.SimulationRecord{
		Simulation: models.Simulation{
			Name:       loaded.Name,
			SourcePath: loaded.Path,
			EndTime:    loaded.End,
			Rooms:      len(rooms),
			CreatedBy:  owner,
		},
		Geometry:  loaded.Geometry,
		Series:    series,
		Variables: loaded.Variables,
		Events:    loaded.Events,
	})
	if err != nil {
		return models.Simulation{}, err
	}

	s.mu.Lock()
	for old, c := range s.stores {
		// Save replaced this owner's earlier import of the path
		if c.owner == owner && c.path == loaded.Path {
			delete(s.stores, old)
		}
	}
	s.stores[id] = cachedStore{store: loaded.Store, owner: owner, path: loaded.Path}
	s.mu.Unlock()

	return s.GetSimulation(ctx, id)
}

func (s *SimulationService) GetSimulation(ctx context.Context, id string) (models.Simulation, error) {
	sim, err := s.repo.Get(ctx, id, UserFrom(ctx))
	if err != nil {
		return models.Simulation{}, mapNotFound(id, err)
	}
	return sim, nil
}

func (s *SimulationService) ListSimulations(ctx context.Context) ([]models.Simulation, error) {
	return s.repo.List(ctx, UserFrom(ctx))
}

// DeleteSimulation removes one of the caller's imports. Shared imports stay.
func (s *SimulationService) DeleteSimulation(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id, UserFrom(ctx)); err != nil {
		return mapNotFound(id, err)
	}
	s.mu.Lock()
	delete(s.stores, id)
	s.mu.Unlock()
	if s.log != nil {
		s.log.Infow("deleted simulation", "id", id, "user", UserFrom(ctx))
	}
	return nil
}

// SimulationRooms lists every room with series data, in input order.
// Rooms missing from the input file come back with only a name.
func (s *SimulationService) SimulationRooms(ctx context.Context, id string) ([]models.RoomGeometry, error) {
	store, err := s.Store(ctx, id)
	if err != nil {
		return nil, err
	}
	rooms := store.Rooms()
	out := make([]models.RoomGeometry, 0, len(rooms))
	for _, room := range rooms {
		g, err := store.Geometry(room)
		if err != nil {
			g = models.RoomGeometry{Name: room}
		}
		out = append(out, g)
	}
	return out, nil
}

func (s *SimulationService) RoomSeries(ctx context.Context, id, room string) (models.RoomSeries, error) {
	store, err := s.Store(ctx, id)
	if err != nil {
		return nil, err
	}
	return store.Get(room)
}

// RoomVariable returns one results column of a room: a Sample field or one of
// the other columns kept at import.
func (s *SimulationService) RoomVariable(ctx context.Context, id, room, name string) (models.Variable, error) {
	rs, err := s.RoomSeries(ctx, id, room)
	if err != nil {
		return models.Variable{}, err
	}
	if v, ok := brisk.SampleVariable(rs, name); ok {
		return v, nil
	}
	vars, err := s.repo.Variables(ctx, id, room)
	if err != nil {
		return models.Variable{}, err
	}
	if v, ok := vars.Find(name); ok {
		return v, nil
	}
	return models.Variable{}, fmt.Errorf("%q in room %q: %w", name, room, brisk.ErrVariableNotFound)
}

// RoomVariableNames lists the names RoomVariable accepts for a room.
func (s *SimulationService) RoomVariableNames(ctx context.Context, id, room string) ([]string, error) {
	if _, err := s.RoomSeries(ctx, id, room); err != nil {
		return nil, err
	}
	vars, err := s.repo.Variables(ctx, id, room)
	if err != nil {
		return nil, err
	}
	return append(append([]string(nil), brisk.SampleVariables...), vars.Names()...), nil
}

// Store returns the in-memory series of a simulation, rebuilding it from the
// database after a restart.
func (s *SimulationService) Store(ctx context.Context, id string) (*fed.Store, error) {
	s.mu.RLock()
	cached, ok := s.stores[id]
	s.mu.RUnlock()
	if ok {
		if !visibleTo(cached.owner, UserFrom(ctx)) {
			return nil, fmt.Errorf("simulation %q: %w", id, ErrSimulationNotFound)
		}
		s.metrics.CacheHit()
		return cached.store, nil
	}
	s.metrics.CacheMiss()

	sim, err := s.GetSimulation(ctx, id)
	if err != nil {
		return nil, err
	}
	series, err := s.repo.Samples(ctx, id)
	if err != nil {
		return nil, err
	}
	geometry, err := s.repo.Rooms(ctx, id)
	if err != nil {
		return nil, err
	}
	store, err := fed.NewStore(series, geometry)
	if err != nil {
		return nil, fmt.Errorf("rebuild simulation %q: %w", id, err)
	}

	s.mu.Lock()
	if cached, ok := s.stores[id]; ok {
		store = cached.store
	} else {
		s.stores[id] = cachedStore{store: store, owner: sim.CreatedBy, path: sim.SourcePath}
	}
	s.mu.Unlock()
	return store, nil
}

func mapNotFound(id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("simulation %q: %w", id, ErrSimulationNotFound)
	}
	return err
}
