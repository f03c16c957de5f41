package service

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"tenability/internal/brisk"
	"tenability/internal/fed"
	"tenability/internal/models"
	"tenability/internal/repository"
)

// fakeEventRepo is a minimal stub that satisfies the repository.EventRepo interface.
type fakeEventRepo struct {
	mu sync.Mutex

	// captured inputs
	gotCtx    context.Context
	gotFilter repository.EventFilter

	// configured outputs
	events []models.SimulationEvent
	err    error

	calls int
}

func (f *fakeEventRepo) List(ctx context.Context, rf repository.EventFilter) ([]models.SimulationEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotCtx = ctx
	f.gotFilter = rf
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.SimulationEvent, 0, len(f.events))
	for _, e := range f.events {
		if rf.From != nil && e.Time < *rf.From {
			continue
		}
		if rf.To != nil && e.Time > *rf.To {
			continue
		}
		if rf.Type != "" && e.Type != rf.Type {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.SimulationEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

// fakeSimRepo keeps records in memory.
type fakeSimRepo struct {
	mu      sync.Mutex
	records map[string]repository.SimulationRecord
	saveErr error

	samplesCalls int
	saves        int
}

func newFakeSimRepo() *fakeSimRepo {
	return &fakeSimRepo{records: make(map[string]repository.SimulationRecord)}
}

func (f *fakeSimRepo) Save(_ context.Context, rec repository.SimulationRecord) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saves++
	replaced := false
	for id, old := range f.records {
		if old.Simulation.CreatedBy == rec.Simulation.CreatedBy && old.Simulation.SourcePath == rec.Simulation.SourcePath {
			delete(f.records, id)
			replaced = true
		}
	}
	if rec.Simulation.ID == "" {
		rec.Simulation.ID = "sim-" + rec.Simulation.Name
		if rec.Simulation.CreatedBy != 0 {
			rec.Simulation.ID += "-" + strconv.Itoa(rec.Simulation.CreatedBy)
		}
		if replaced {
			rec.Simulation.ID += "-v" + strconv.Itoa(f.saves)
		}
	}
	f.records[rec.Simulation.ID] = rec
	return rec.Simulation.ID, nil
}

func (f *fakeSimRepo) Get(_ context.Context, id string, owner int) (models.Simulation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok || !visibleTo(rec.Simulation.CreatedBy, owner) {
		return models.Simulation{}, repository.ErrNotFound
	}
	return rec.Simulation, nil
}

func (f *fakeSimRepo) List(_ context.Context, owner int) ([]models.Simulation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Simulation, 0, len(f.records))
	for _, rec := range f.records {
		if visibleTo(rec.Simulation.CreatedBy, owner) {
			out = append(out, rec.Simulation)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSimRepo) Rooms(_ context.Context, id string) ([]models.RoomGeometry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[id].Geometry, nil
}

func (f *fakeSimRepo) Samples(_ context.Context, id string) (map[string]models.RoomSeries, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.samplesCalls++
	return f.records[id].Series, nil
}

func (f *fakeSimRepo) Variables(_ context.Context, id, room string) (models.RoomVariables, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[id].Variables[room], nil
}

func (f *fakeSimRepo) Delete(_ context.Context, id string, owner int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := f.records[id]; !ok || rec.Simulation.CreatedBy != owner {
		return repository.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

// fakeLoader returns a fixed simulation for any path.
type fakeLoader struct {
	sim *brisk.Simulation
	err error
}

func (f *fakeLoader) Load(path string) (*brisk.Simulation, error) {
	if f.err != nil {
		return nil, f.err
	}
	sim := *f.sim
	sim.Path = path
	return &sim, nil
}

// uniform returns samples every 60 s from 0 to end with fixed conditions.
func uniform(end float64, s models.Sample) models.RoomSeries {
	var rs models.RoomSeries
	for t := 0.0; t <= end; t += 60 {
		s.Time = t
		rs = append(rs, s)
	}
	return rs
}

// smoky is an occupant-height smoke layer with 3500 ppm CO: 0.1 FED_CO per minute.
var smoky = models.Sample{
	LayerHeight: 1.0, COUpper: 3500, CO2Upper: 1, O2Upper: 20.9,
	COLower: 0, CO2Lower: 0, O2Lower: 20.9, UpperLayerTemp: 20, LowerLayerTemp: 20,
}

var clean = models.Sample{
	LayerHeight: 3.0, O2Upper: 20.9, O2Lower: 20.9, UpperLayerTemp: 20, LowerLayerTemp: 20,
}

func testSimulation() *brisk.Simulation {
	geometry := []models.RoomGeometry{
		{ID: 1, Name: "Lounge", Length: 5, Width: 4, MinHeight: 2.4, MaxHeight: 2.4},
		{ID: 2, Name: "Corridor", Length: 8, Width: 1.2, MinHeight: 2.4, MaxHeight: 2.4},
	}
	store, err := fed.NewStore(map[string]models.RoomSeries{
		"Lounge":   uniform(300, smoky),
		"Corridor": uniform(300, clean),
	}, geometry)
	if err != nil {
		panic(err)
	}
	return &brisk.Simulation{
		Name:     "run1",
		Geometry: geometry,
		Store:    store,
		Variables: map[string]models.RoomVariables{
			"Lounge": {{Name: "HRR (kW)", Times: []float64{0, 60}, Values: []float64{0, 500}}},
		},
		Events: []models.SimulationEvent{
			{Type: models.EventSprinkler, Name: "Sprinkler 1", Time: 65},
			{Type: models.EventSmokeDetector, Name: "Smoke detector 1", Time: 200},
		},
		Start: 0,
		End:   300,
	}
}
