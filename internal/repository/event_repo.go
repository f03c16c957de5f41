package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tenability/internal/models"
)

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

var _ EventRepo = (*EventSQLite)(nil)

// Append inserts a new event, assigning an ID when it has none.
func (r *EventSQLite) Append(ctx context.Context, e models.SimulationEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, insertSimulationEventSQL,
		e.EventID,
		e.SimulationID,
		normalizeType(e.Type),
		e.Name,
		e.Time,
		e.Description,
	)
	return err
}

// List returns events filtered by simulation, [from, to] (inclusive) and type, ordered by time.
func (r *EventSQLite) List(ctx context.Context, f EventFilter) ([]models.SimulationEvent, error) {
	var (
		conds []string
		args  []any
	)

	if f.SimulationID != "" {
		conds = append(conds, "simulation_id = ?")
		args = append(args, f.SimulationID)
	}
	if f.From != nil {
		conds = append(conds, "time_s >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		conds = append(conds, "time_s <= ?")
		args = append(args, *f.To)
	}
	if typ := normalizeType(f.Type); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := `SELECT id, simulation_id, type, name, time_s, message FROM simulation_events`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY time_s ASC, name ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer rows.Close()

	out := make([]models.SimulationEvent, 0, 16)
	for rows.Next() {
		var (
			ev  models.SimulationEvent
			msg sql.NullString
		)
		if err := rows.Scan(&ev.EventID, &ev.SimulationID, &ev.Type, &ev.Name, &ev.Time, &msg); err != nil {
			return nil, err
		}
		ev.Description = msg.String
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeType(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}
