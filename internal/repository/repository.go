package repository

import (
	"context"
	"database/sql"
	"errors"

	"tenability/internal/models"
)

// ErrNotFound is returned when a requested simulation does not exist.
var ErrNotFound = errors.New("not found")

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// SimulationRecord is everything persisted for one imported results set.
type SimulationRecord struct {
	Simulation models.Simulation
	Geometry   []models.RoomGeometry
	Series     map[string]models.RoomSeries
	Variables  map[string]models.RoomVariables
	Events     []models.SimulationEvent
}

// SimulationRepo stores imports. Get and List see the owner's simulations
// plus the shared ones (created_by 0); Delete only touches the owner's.
type SimulationRepo interface {
	Save(ctx context.Context, rec SimulationRecord) (string, error)
	Get(ctx context.Context, id string, owner int) (models.Simulation, error)
	List(ctx context.Context, owner int) ([]models.Simulation, error)
	Rooms(ctx context.Context, id string) ([]models.RoomGeometry, error)
	Samples(ctx context.Context, id string) (map[string]models.RoomSeries, error)
	Variables(ctx context.Context, id, room string) (models.RoomVariables, error)
	Delete(ctx context.Context, id string, owner int) error
}

// EventFilter narrows an event listing. Nil bounds are open.
type EventFilter struct {
	SimulationID string
	From, To     *float64
	Type         string
}

type EventRepo interface {
	Append(ctx context.Context, e models.SimulationEvent) error
	List(ctx context.Context, f EventFilter) ([]models.SimulationEvent, error)
}

type Repository struct {
	Simulations SimulationRepo
	EventRepo   EventRepo
	Auth        Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Simulations: NewSimulationSQLite(db),
		EventRepo:   NewEventSQLite(db),
		Auth:        NewUserRepository(db),
	}
}
