package repository

import (
	"database/sql"
	"errors"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"tenability/internal/models"
)

func newSimulationRepo(t *testing.T) (*SimulationSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("mock expectations: %v", err)
		}
		_ = db.Close()
	})
	return NewSimulationSQLite(db), mock
}

var importedAt = time.Date(2025, 5, 4, 10, 0, 0, 0, time.UTC)

func sampleRecord() SimulationRecord {
	return SimulationRecord{
		Simulation: models.Simulation{
			ID:         "sim-1",
			Name:       "run1",
			SourcePath: "/data/run1.zip",
			EndTime:    120,
			ImportedAt: importedAt,
			CreatedBy:  7,
		},
		Geometry: []models.RoomGeometry{{ID: 1, Name: "Lounge", Length: 5, Width: 4, MinHeight: 2.4, MaxHeight: 2.4}},
		Series: map[string]models.RoomSeries{
			"Lounge": {
				{Time: 0, LayerHeight: 2.4, CO2Lower: 0.04, CO2Upper: 0.04, O2Lower: 20.9, O2Upper: 20.9, UpperLayerTemp: 20, LowerLayerTemp: 20},
				{Time: 60, LayerHeight: 1.5, CO2Lower: math.NaN(), CO2Upper: 1, COUpper: 300, O2Lower: 20.9, O2Upper: 18, UpperLayerTemp: 90, LowerLayerTemp: 25},
			},
		},
		Events: []models.SimulationEvent{{EventID: "e1", Type: models.EventSprinkler, Name: "Sprinkler 1", Time: 65}},
	}
}

func TestSimulationSQLite_Save(t *testing.T) {
	repo, mock := newSimulationRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteSimulationByPathSQL)).
		WithArgs("/data/run1.zip", 7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(insertSimulationSQL)).
		WithArgs("sim-1", "run1", "/data/run1.zip", 120.0, 1, importedAt, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertRoomSQL)).
		WithArgs("sim-1", 1, "Lounge", 5.0, 4.0, 2.4, 2.4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep := mock.ExpectPrepare(regexp.QuoteMeta(insertSampleSQL))
	prep.ExpectExec().
		WithArgs("sim-1", "Lounge", 0.0, 2.4, 0.04, 0.04, 0.0, 0.0, 20.9, 20.9, 20.0, 20.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs("sim-1", "Lounge", 60.0, 1.5, nil, 1.0, 0.0, 300.0, 20.9, 18.0, 90.0, 25.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertSimulationEventSQL)).
		WithArgs("e1", "sim-1", "SPRINKLER", "Sprinkler 1", 65.0, "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := repo.Save(ctx(t), sampleRecord())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id != "sim-1" {
		t.Fatalf("id = %q", id)
	}
}

func TestSimulationSQLite_Save_RollsBackOnSampleError(t *testing.T) {
	repo, mock := newSimulationRepo(t)
	rec := sampleRecord()
	rec.Geometry = nil
	rec.Events = nil

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteSimulationByPathSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(insertSimulationSQL)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectPrepare(regexp.QuoteMeta(insertSampleSQL)).
		ExpectExec().
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	if _, err := repo.Save(ctx(t), rec); err == nil {
		t.Fatal("expected error")
	}
}

var simulationColumns = []string{"id", "name", "source_path", "end_time", "rooms", "imported_at", "created_by"}

func TestSimulationSQLite_Get(t *testing.T) {
	repo, mock := newSimulationRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectSimulationSQL)).
		WithArgs("sim-1", 7).
		WillReturnRows(sqlmock.NewRows(simulationColumns).
			AddRow("sim-1", "run1", "/data/run1", nil, 3, importedAt, 7))

	sim, err := repo.Get(ctx(t), "sim-1", 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sim.Rooms != 3 || sim.Name != "run1" || !math.IsNaN(sim.EndTime) || !sim.ImportedAt.Equal(importedAt) || sim.CreatedBy != 7 {
		t.Fatalf("unexpected simulation: %+v", sim)
	}
}

func TestSimulationSQLite_Get_NotFound(t *testing.T) {
	repo, mock := newSimulationRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectSimulationSQL)).
		WithArgs("nope", 7).
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.Get(ctx(t), "nope", 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSimulationSQLite_List(t *testing.T) {
	repo, mock := newSimulationRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectSimulationsSQL)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(simulationColumns).
			AddRow("b", "run2", "/data/run2", 300.0, 2, importedAt.Add(time.Hour), 7).
			AddRow("a", "run1", "/data/run1", 120.0, 1, importedAt, 0))

	got, err := repo.List(ctx(t), 7)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].EndTime != 120 || got[1].CreatedBy != 0 {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestSimulationSQLite_RoomsAndSamples(t *testing.T) {
	repo, mock := newSimulationRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectRoomsSQL)).
		WithArgs("sim-1").
		WillReturnRows(sqlmock.NewRows([]string{"room_id", "name", "length", "width", "min_height", "max_height"}).
			AddRow(1, "Lounge", 5.0, 4.0, 2.4, 2.4).
			AddRow(2, "Corridor", 8.0, 1.2, 2.4, 2.7))

	cols := []string{"room", "time_s", "layer_height", "co2_lower", "co2_upper", "co_lower", "co_upper", "o2_lower", "o2_upper", "upper_temp", "lower_temp"}
	mock.ExpectQuery(regexp.QuoteMeta(selectSamplesSQL)).
		WithArgs("sim-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("Corridor", 0.0, 2.7, 0.04, 0.04, 0.0, 0.0, 20.9, 20.9, 20.0, 20.0).
			AddRow("Lounge", 0.0, 2.4, nil, 0.04, 0.0, 0.0, 20.9, 20.9, 20.0, 20.0).
			AddRow("Lounge", 30.0, 2.0, 0.1, 0.5, 10.0, 200.0, 20.8, 19.0, 60.0, 21.0))

	rooms, err := repo.Rooms(ctx(t), "sim-1")
	if err != nil {
		t.Fatalf("Rooms: %v", err)
	}
	if len(rooms) != 2 || rooms[1].Name != "Corridor" || rooms[1].MaxHeight != 2.7 {
		t.Fatalf("unexpected rooms: %+v", rooms)
	}

	series, err := repo.Samples(ctx(t), "sim-1")
	if err != nil {
		t.Fatalf("Samples: %v", err)
	}
	l := series["Lounge"]
	if len(series) != 2 || len(l) != 2 {
		t.Fatalf("unexpected series: %+v", series)
	}
	if !math.IsNaN(l[0].CO2Lower) || l[1].COUpper != 200 || l[1].UpperLayerTemp != 60 {
		t.Fatalf("unexpected lounge samples: %+v", l)
	}
}

func TestSimulationSQLite_Delete(t *testing.T) {
	repo, mock := newSimulationRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteSimulationSQL)).
		WithArgs("sim-1", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteSimulationSQL)).
		WithArgs("sim-2", 8).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(ctx(t), "sim-1", 7); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx(t), "sim-2", 8); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSimulationSQLite_SaveVariables(t *testing.T) {
	repo, mock := newSimulationRepo(t)
	rec := sampleRecord()
	rec.Geometry, rec.Series, rec.Events = nil, nil, nil
	rec.Variables = map[string]models.RoomVariables{
		"Lounge": {{Name: "HRR (kW)", Times: []float64{0, 60}, Values: []float64{0, math.NaN()}}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteSimulationByPathSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(insertSimulationSQL)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectPrepare(regexp.QuoteMeta(insertSampleSQL))
	prep := mock.ExpectPrepare(regexp.QuoteMeta(insertVariableSQL))
	prep.ExpectExec().
		WithArgs("sim-1", "Lounge", 0, "HRR (kW)", 0, 0.0, 0.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs("sim-1", "Lounge", 0, "HRR (kW)", 1, 60.0, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if _, err := repo.Save(ctx(t), rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestSimulationSQLite_Variables(t *testing.T) {
	repo, mock := newSimulationRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectVariablesSQL)).
		WithArgs("sim-1", "Lounge").
		WillReturnRows(sqlmock.NewRows([]string{"position", "name", "time_s", "value"}).
			AddRow(0, "HRR (kW)", 0.0, 0.0).
			AddRow(0, "HRR (kW)", 30.0, 150.0).
			AddRow(1, "Visibility (m)", 0.0, 30.0).
			AddRow(1, "Visibility (m)", 30.0, nil))

	vars, err := repo.Variables(ctx(t), "sim-1", "Lounge")
	if err != nil {
		t.Fatalf("Variables: %v", err)
	}
	if len(vars) != 2 || vars[0].Values[1] != 150 || vars[1].Name != "Visibility (m)" {
		t.Fatalf("unexpected variables: %+v", vars)
	}
	if !math.IsNaN(vars[1].Values[1]) {
		t.Fatalf("NULL should come back as NaN, got %v", vars[1].Values[1])
	}
}
