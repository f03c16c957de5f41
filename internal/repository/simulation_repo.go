package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"tenability/internal/models"
)

type SimulationSQLite struct {
	db *sql.DB
}

func NewSimulationSQLite(db *sql.DB) *SimulationSQLite {
	return &SimulationSQLite{db: db}
}

var _ SimulationRepo = (*SimulationSQLite)(nil)

// nowUTC is replaced in tests.
var nowUTC = func() time.Time { return time.Now().UTC() }

const (
	deleteSimulationByPathSQL = `DELETE FROM simulations WHERE source_path = ? AND created_by = ?`
	deleteSimulationSQL       = `DELETE FROM simulations WHERE id = ? AND created_by = ?`

	insertSimulationSQL = `
		INSERT INTO simulations (id, name, source_path, end_time, rooms, imported_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	insertRoomSQL = `
		INSERT INTO rooms (simulation_id, room_id, name, length, width, min_height, max_height)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	insertSampleSQL = `
		INSERT INTO samples (simulation_id, room, time_s, layer_height, co2_lower, co2_upper,
			co_lower, co_upper, o2_lower, o2_upper, upper_temp, lower_temp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	insertVariableSQL = `
		INSERT INTO room_variables (simulation_id, room, position, name, row_idx, time_s, value)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	insertSimulationEventSQL = `
		INSERT INTO simulation_events (id, simulation_id, type, name, time_s, message)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	selectSimulationColumns = `SELECT id, name, source_path, end_time, rooms, imported_at, created_by FROM simulations`
	selectSimulationSQL     = selectSimulationColumns + ` WHERE id = ? AND created_by IN (0, ?)`
	selectSimulationsSQL    = selectSimulationColumns + ` WHERE created_by IN (0, ?) ORDER BY imported_at DESC, name ASC`

	selectRoomsSQL = `
		SELECT room_id, name, length, width, min_height, max_height
		FROM rooms WHERE simulation_id = ? ORDER BY room_id ASC, name ASC
	`
	selectSamplesSQL = `
		SELECT room, time_s, layer_height, co2_lower, co2_upper, co_lower, co_upper,
			o2_lower, o2_upper, upper_temp, lower_temp
		FROM samples WHERE simulation_id = ? ORDER BY room ASC, time_s ASC
	`
	selectVariablesSQL = `
		SELECT position, name, time_s, value
		FROM room_variables WHERE simulation_id = ? AND room = ? ORDER BY position ASC, row_idx ASC
	`
)

// Save replaces the owner's earlier import of the same source path and
// stores rec in one transaction. It returns the simulation ID.
func (r *SimulationSQLite) Save(ctx context.Context, rec SimulationRecord) (string, error) {
	sim := rec.Simulation
	if sim.ID == "" {
		sim.ID = uuid.NewString()
	}
	if sim.ImportedAt.IsZero() {
		sim.ImportedAt = nowUTC()
	} else {
		sim.ImportedAt = sim.ImportedAt.UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin save transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, deleteSimulationByPathSQL, sim.SourcePath, sim.CreatedBy); err != nil {
		return "", fmt.Errorf("replace simulation %q: %w", sim.SourcePath, err)
	}
	if _, err := tx.ExecContext(ctx, insertSimulationSQL,
		sim.ID, sim.Name, sim.SourcePath, nullable(sim.EndTime), len(rec.Series), sim.ImportedAt, sim.CreatedBy,
	); err != nil {
		return "", fmt.Errorf("insert simulation: %w", err)
	}

	for _, g := range rec.Geometry {
		if _, err := tx.ExecContext(ctx, insertRoomSQL,
			sim.ID, g.ID, g.Name, g.Length, g.Width, g.MinHeight, g.MaxHeight,
		); err != nil {
			return "", fmt.Errorf("insert room %q: %w", g.Name, err)
		}
	}

	if err := insertSamples(ctx, tx, sim.ID, rec.Series); err != nil {
		return "", err
	}
	if err := insertVariables(ctx, tx, sim.ID, rec.Variables); err != nil {
		return "", err
	}

	for _, e := range rec.Events {
		if e.EventID == "" {
			e.EventID = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx, insertSimulationEventSQL,
			e.EventID, sim.ID, normalizeType(e.Type), e.Name, e.Time, e.Description,
		); err != nil {
			return "", fmt.Errorf("insert event %q: %w", e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit save transaction: %w", err)
	}
	return sim.ID, nil
}

func insertSamples(ctx context.Context, tx *sql.Tx, simID string, series map[string]models.RoomSeries) error {
	stmt, err := tx.PrepareContext(ctx, insertSampleSQL)
	if err != nil {
		return fmt.Errorf("prepare sample insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	rooms := make([]string, 0, len(series))
	for room := range series {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)

	for _, room := range rooms {
		for _, s := range series[room] {
			if _, err := stmt.ExecContext(ctx,
				simID, room, s.Time,
				nullable(s.LayerHeight), nullable(s.CO2Lower), nullable(s.CO2Upper),
				nullable(s.COLower), nullable(s.COUpper), nullable(s.O2Lower), nullable(s.O2Upper),
				nullable(s.UpperLayerTemp), nullable(s.LowerLayerTemp),
			); err != nil {
				return fmt.Errorf("insert sample %q t=%g: %w", room, s.Time, err)
			}
		}
	}
	return nil
}

func insertVariables(ctx context.Context, tx *sql.Tx, simID string, vars map[string]models.RoomVariables) error {
	if len(vars) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, insertVariableSQL)
	if err != nil {
		return fmt.Errorf("prepare variable insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	rooms := make([]string, 0, len(vars))
	for room := range vars {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)

	for _, room := range rooms {
		for pos, v := range vars[room] {
			for i, t := range v.Times {
				if _, err := stmt.ExecContext(ctx, simID, room, pos, v.Name, i, t, nullable(v.Values[i])); err != nil {
					return fmt.Errorf("insert variable %q of %q t=%g: %w", v.Name, room, t, err)
				}
			}
		}
	}
	return nil
}

// Get returns one simulation visible to owner, or ErrNotFound.
func (r *SimulationSQLite) Get(ctx context.Context, id string, owner int) (models.Simulation, error) {
	sim, err := scanSimulation(r.db.QueryRowContext(ctx, selectSimulationSQL, id, owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Simulation{}, fmt.Errorf("simulation %q: %w", id, ErrNotFound)
		}
		return models.Simulation{}, fmt.Errorf("select simulation %q: %w", id, err)
	}
	return sim, nil
}

// List returns the simulations visible to owner, newest import first.
func (r *SimulationSQLite) List(ctx context.Context, owner int) ([]models.Simulation, error) {
	rows, err := r.db.QueryContext(ctx, selectSimulationsSQL, owner)
	if err != nil {
		return nil, fmt.Errorf("select simulations: %w", err)
	}
	defer rows.Close()

	out := make([]models.Simulation, 0, 16)
	for rows.Next() {
		sim, err := scanSimulation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sim)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Rooms returns the stored geometry of a simulation.
func (r *SimulationSQLite) Rooms(ctx context.Context, id string) ([]models.RoomGeometry, error) {
	rows, err := r.db.QueryContext(ctx, selectRoomsSQL, id)
	if err != nil {
		return nil, fmt.Errorf("select rooms of %q: %w", id, err)
	}
	defer rows.Close()

	out := make([]models.RoomGeometry, 0, 8)
	for rows.Next() {
		var g models.RoomGeometry
		if err := rows.Scan(&g.ID, &g.Name, &g.Length, &g.Width, &g.MinHeight, &g.MaxHeight); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Samples returns every stored room series of a simulation.
func (r *SimulationSQLite) Samples(ctx context.Context, id string) (map[string]models.RoomSeries, error) {
	rows, err := r.db.QueryContext(ctx, selectSamplesSQL, id)
	if err != nil {
		return nil, fmt.Errorf("select samples of %q: %w", id, err)
	}
	defer rows.Close()

	out := make(map[string]models.RoomSeries)
	for rows.Next() {
		var (
			room string
			s    models.Sample
			vals [9]sql.NullFloat64
		)
		if err := rows.Scan(&room, &s.Time,
			&vals[0], &vals[1], &vals[2], &vals[3], &vals[4], &vals[5], &vals[6], &vals[7], &vals[8],
		); err != nil {
			return nil, err
		}
		for i, dst := range []*float64{
			&s.LayerHeight, &s.CO2Lower, &s.CO2Upper, &s.COLower, &s.COUpper,
			&s.O2Lower, &s.O2Upper, &s.UpperLayerTemp, &s.LowerLayerTemp,
		} {
			*dst = fromNullable(vals[i])
		}
		out[room] = append(out[room], s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Variables returns the stored extra columns of one room, in sheet order.
func (r *SimulationSQLite) Variables(ctx context.Context, id, room string) (models.RoomVariables, error) {
	rows, err := r.db.QueryContext(ctx, selectVariablesSQL, id, room)
	if err != nil {
		return nil, fmt.Errorf("select variables of %q/%q: %w", id, room, err)
	}
	defer rows.Close()

	var (
		out  models.RoomVariables
		last = -1
	)
	for rows.Next() {
		var (
			pos  int
			name string
			t    float64
			v    sql.NullFloat64
		)
		if err := rows.Scan(&pos, &name, &t, &v); err != nil {
			return nil, err
		}
		if pos != last {
			out = append(out, models.Variable{Name: name})
			last = pos
		}
		cur := &out[len(out)-1]
		cur.Times = append(cur.Times, t)
		cur.Values = append(cur.Values, fromNullable(v))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes one of owner's simulations and, by cascade, everything stored with it.
// Shared imports cannot be deleted through the API.
func (r *SimulationSQLite) Delete(ctx context.Context, id string, owner int) error {
	res, err := r.db.ExecContext(ctx, deleteSimulationSQL, id, owner)
	if err != nil {
		return fmt.Errorf("delete simulation %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete simulation %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("simulation %q: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSimulation(row rowScanner) (models.Simulation, error) {
	var (
		sim models.Simulation
		end sql.NullFloat64
	)
	if err := row.Scan(&sim.ID, &sim.Name, &sim.SourcePath, &end, &sim.Rooms, &sim.ImportedAt, &sim.CreatedBy); err != nil {
		return models.Simulation{}, err
	}
	sim.EndTime = fromNullable(end)
	sim.ImportedAt = sim.ImportedAt.UTC()
	return sim, nil
}

// nullable maps NaN, which SQLite cannot hold, to NULL.
func nullable(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func fromNullable(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
