package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaSimulations = `
CREATE TABLE IF NOT EXISTS simulations (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    source_path TEXT NOT NULL,
    end_time REAL,
    rooms INTEGER NOT NULL,
    imported_at TIMESTAMP NOT NULL,
    created_by INTEGER NOT NULL DEFAULT 0,
    UNIQUE (created_by, source_path)
);
`

const schemaRooms = `
CREATE TABLE IF NOT EXISTS rooms (
    simulation_id TEXT NOT NULL REFERENCES simulations(id) ON DELETE CASCADE,
    room_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    length REAL,
    width REAL,
    min_height REAL,
    max_height REAL,
    PRIMARY KEY (simulation_id, name)
);
`

const schemaSamples = `
CREATE TABLE IF NOT EXISTS samples (
    simulation_id TEXT NOT NULL REFERENCES simulations(id) ON DELETE CASCADE,
    room TEXT NOT NULL,
    time_s REAL NOT NULL,
    layer_height REAL,
    co2_lower REAL,
    co2_upper REAL,
    co_lower REAL,
    co_upper REAL,
    o2_lower REAL,
    o2_upper REAL,
    upper_temp REAL,
    lower_temp REAL,
    PRIMARY KEY (simulation_id, room, time_s)
);
`

const schemaRoomVariables = `
CREATE TABLE IF NOT EXISTS room_variables (
    simulation_id TEXT NOT NULL REFERENCES simulations(id) ON DELETE CASCADE,
    room TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    row_idx INTEGER NOT NULL,
    time_s REAL NOT NULL,
    value REAL,
    PRIMARY KEY (simulation_id, room, position, row_idx)
);
`

const schemaSimulationEvents = `
CREATE TABLE IF NOT EXISTS simulation_events (
    id TEXT PRIMARY KEY,
    simulation_id TEXT NOT NULL REFERENCES simulations(id) ON DELETE CASCADE,
    type TEXT NOT NULL,
    name TEXT NOT NULL,
    time_s REAL NOT NULL,
    message TEXT
);
`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaSimulations,
		schemaRooms,
		schemaSamples,
		schemaRoomVariables,
		schemaSimulationEvents,
		schemaUsers,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
