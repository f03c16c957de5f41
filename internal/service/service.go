package service

import (
	"context"
	"time"

	"tenability/internal/brisk"
	"tenability/internal/config"
	"tenability/internal/fed"
	"tenability/internal/logger"
	"tenability/internal/metrics"
	"tenability/internal/models"
	"tenability/internal/repository"
)

// Authorization manages the accounts that own imported simulations.
type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
	CurrentUser(ctx context.Context) (*models.User, error)
}

// Simulations imports results sets and serves them from memory. Every call
// is scoped to the user carried by ctx (see WithUser).
type Simulations interface {
	ImportSimulation(ctx context.Context, path string) (models.Simulation, error)
	GetSimulation(ctx context.Context, id string) (models.Simulation, error)
	ListSimulations(ctx context.Context) ([]models.Simulation, error)
	DeleteSimulation(ctx context.Context, id string) error
	SimulationRooms(ctx context.Context, id string) ([]models.RoomGeometry, error)
	RoomSeries(ctx context.Context, id, room string) (models.RoomSeries, error)
	RoomVariable(ctx context.Context, id, room, name string) (models.Variable, error)
	RoomVariableNames(ctx context.Context, id, room string) ([]string, error)
	Store(ctx context.Context, id string) (*fed.Store, error)
}

// Tenability runs FED path integrations against an imported simulation.
type Tenability interface {
	ComputeCO(ctx context.Context, id string, req PathRequest) (PathResult, error)
	ComputeThermal(ctx context.Context, id string, req PathRequest) (PathResult, error)
	PerRoom(ctx context.Context, id, model string, rooms []string) ([]RoomResult, error)
}

// EventLog exposes device activations with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.SimulationEvent, error)
}

// Replayer streams a room's samples in simulation-time order.
// Stop via context cancellation.
type Replayer interface {
	Replay(ctx context.Context, id, room string, tick time.Duration, emit func(ReplayFrame) error) error
}

// Service aggregates all sub-services.
type Service struct {
	Simulations
	Tenability
	EventLog
	Replayer
	Authorization
}

// Deps are the collaborators shared by the services.
type Deps struct {
	Config  config.Config
	Log     *logger.Logger
	Metrics *metrics.Metrics
	Loader  Loader
}

func NewService(repos *repository.Repository, deps Deps) *Service {
	loader := deps.Loader
	if loader == nil {
		loader = brisk.NewLoader(deps.Log)
	}
	sims := NewSimulationService(repos.Simulations, loader, deps.Metrics, deps.Log)
	return &Service{
		Simulations:   sims,
		Tenability:    NewTenabilityService(sims, repos.EventRepo, deps.Config.FED, deps.Metrics, deps.Log),
		EventLog:      NewEventLogService(repos.Simulations, repos.EventRepo),
		Replayer:      NewReplayService(sims, repos.EventRepo),
		Authorization: NewAuthService(repos.Auth, deps.Config.Auth.SigningKey, deps.Config.Auth.TokenTTL),
	}
}
