package handlers

import (
	"context"
	"net/http"
	"time"

	"tenability/internal/brisk"
	"tenability/internal/fed"
	"tenability/internal/models"
	"tenability/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string

	user    *models.User
	userErr error
	lastCtx context.Context
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}
func (m *mockAuth) CurrentUser(ctx context.Context) (*models.User, error) {
	m.lastCtx = ctx
	return m.user, m.userErr
}

type mockSimulations struct {
	sims      []models.Simulation
	rooms     []models.RoomGeometry
	series    models.RoomSeries
	variables models.RoomVariables
	err       error
	lastPath  string
	lastID    string
	lastRoom  string
	lastVar   string
	lastUser  int
	deleted   []string
}

func (m *mockSimulations) ImportSimulation(ctx context.Context, path string) (models.Simulation, error) {
	m.lastPath = path
	m.lastUser = service.UserFrom(ctx)
	if m.err != nil {
		return models.Simulation{}, m.err
	}
	return m.sims[0], nil
}
func (m *mockSimulations) GetSimulation(ctx context.Context, id string) (models.Simulation, error) {
	m.lastID = id
	if m.err != nil {
		return models.Simulation{}, m.err
	}
	for _, s := range m.sims {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Simulation{}, service.ErrSimulationNotFound
}
func (m *mockSimulations) ListSimulations(ctx context.Context) ([]models.Simulation, error) {
	m.lastUser = service.UserFrom(ctx)
	return m.sims, m.err
}
func (m *mockSimulations) DeleteSimulation(ctx context.Context, id string) error {
	m.lastID, m.lastUser = id, service.UserFrom(ctx)
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}
func (m *mockSimulations) RoomVariable(ctx context.Context, id, room, name string) (models.Variable, error) {
	m.lastID, m.lastRoom, m.lastVar = id, room, name
	if m.err != nil {
		return models.Variable{}, m.err
	}
	if v, ok := m.variables.Find(name); ok {
		return v, nil
	}
	return models.Variable{}, brisk.ErrVariableNotFound
}
func (m *mockSimulations) RoomVariableNames(ctx context.Context, id, room string) ([]string, error) {
	m.lastID, m.lastRoom = id, room
	return m.variables.Names(), m.err
}
func (m *mockSimulations) SimulationRooms(ctx context.Context, id string) ([]models.RoomGeometry, error) {
	m.lastID = id
	return m.rooms, m.err
}
func (m *mockSimulations) RoomSeries(ctx context.Context, id, room string) (models.RoomSeries, error) {
	m.lastID, m.lastRoom = id, room
	return m.series, m.err
}
func (m *mockSimulations) Store(ctx context.Context, id string) (*fed.Store, error) {
	return nil, m.err
}

type mockTenability struct {
	result  service.PathResult
	rooms   []service.RoomResult
	err     error
	calls   []string // models requested, in order
	lastID  string
	lastReq service.PathRequest
	lastSel []string
}

func (m *mockTenability) ComputeCO(ctx context.Context, id string, req service.PathRequest) (service.PathResult, error) {
	m.calls = append(m.calls, models.ModelCO)
	m.lastID, m.lastReq = id, req
	return m.result, m.err
}
func (m *mockTenability) ComputeThermal(ctx context.Context, id string, req service.PathRequest) (service.PathResult, error) {
	m.calls = append(m.calls, models.ModelThermal)
	m.lastID, m.lastReq = id, req
	return m.result, m.err
}
func (m *mockTenability) PerRoom(ctx context.Context, id, model string, rooms []string) ([]service.RoomResult, error) {
	m.calls = append(m.calls, model)
	m.lastID, m.lastSel = id, rooms
	return m.rooms, m.err
}

type mockEventLog struct {
	resp     []models.SimulationEvent
	err      error
	lastFrom *float64
	lastTo   *float64
	lastType string
	lastID   string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.SimulationEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	m.lastID = f.SimulationID
	return m.resp, m.err
}

type mockReplayer struct {
	frames []service.ReplayFrame
	err    error // returned after all frames are emitted
}

func (m *mockReplayer) Replay(ctx context.Context, id, room string, tick time.Duration, emit func(service.ReplayFrame) error) error {
	for _, f := range m.frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := emit(f); err != nil {
			return err
		}
	}
	return m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
