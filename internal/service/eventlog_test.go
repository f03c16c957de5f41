package service

import (
	"context"
	"errors"
	"testing"

	"tenability/internal/models"
)

func ptr(v float64) *float64 { return &v }

// normalizeEventType

func Test_normalizeEventType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		exp  string
	}{
		{name: "empty stays empty", in: "", exp: ""},
		{name: "trim spaces", in: "  SPRINKLER ", exp: "SPRINKLER"},
		{name: "uppercase", in: "smoke_detector", exp: "SMOKE_DETECTOR"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			got := normalizeEventType(c.in)
			if got != c.exp {
				t.Fatalf("normalizeEventType(%q) = %q; want %q", c.in, got, c.exp)
			}
		})
	}
}

// normalizeAndValidateFilter

func Test_normalizeAndValidateFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       LogFilter
		wantType string
		wantErr  error
	}{
		{name: "all empty ok", in: LogFilter{}},
		{
			name:    "from after to -> error",
			in:      LogFilter{From: ptr(120), To: ptr(60), Type: "sprinkler"},
			wantErr: errInvalidTimeRange,
		},
		{
			name:     "equal bounds and type",
			in:       LogFilter{From: ptr(60), To: ptr(60), Type: " sprinkler "},
			wantType: "SPRINKLER",
		},
		{
			name: "open upper bound",
			in:   LogFilter{From: ptr(500)},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := normalizeAndValidateFilter(tc.in)

			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected err %v; got %v", tc.wantErr, err)
			}
			if err != nil {
				return
			}
			if got.From != tc.in.From || got.To != tc.in.To {
				t.Fatalf("bounds not passed through: %+v", got)
			}
			if got.Type != tc.wantType {
				t.Fatalf("type: got %q; want %q", got.Type, tc.wantType)
			}
		})
	}
}

// EventLogService.List

func TestEventLogService_List_DelegatesNormalizedParams(t *testing.T) {
	t.Parallel()

	sims := newFakeSimRepo()
	sims.records["sim-1"] = recordFor("sim-1")
	frepo := &fakeEventRepo{
		events: []models.SimulationEvent{
			{EventID: "1", Type: models.EventSprinkler, Time: 65},
			{EventID: "2", Type: models.EventSprinkler, Time: 400},
		},
	}
	svc := NewEventLogService(sims, frepo)

	out, err := svc.List(context.Background(), LogFilter{
		SimulationID: "sim-1",
		From:         ptr(0),
		To:           ptr(300),
		Type:         "  sprinkler ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].EventID != "1" {
		t.Fatalf("unexpected events: %+v", out)
	}
	if frepo.calls != 1 {
		t.Fatalf("repo List should be called once, got %d", frepo.calls)
	}
	if frepo.gotFilter.Type != "SPRINKLER" || frepo.gotFilter.SimulationID != "sim-1" {
		t.Fatalf("repo got filter %+v", frepo.gotFilter)
	}
}

func TestEventLogService_List_ValidationError(t *testing.T) {
	t.Parallel()

	frepo := &fakeEventRepo{}
	svc := NewEventLogService(newFakeSimRepo(), frepo)

	_, err := svc.List(context.Background(), LogFilter{From: ptr(10), To: ptr(5)})
	if !errors.Is(err, errInvalidTimeRange) {
		t.Fatalf("expected errInvalidTimeRange; got %v", err)
	}
	if frepo.calls != 0 {
		t.Fatalf("repo should not be called on validation error")
	}
}

func TestEventLogService_List_UnknownSimulation(t *testing.T) {
	t.Parallel()

	svc := NewEventLogService(newFakeSimRepo(), &fakeEventRepo{})
	_, err := svc.List(context.Background(), LogFilter{SimulationID: "nope"})
	if !errors.Is(err, ErrSimulationNotFound) {
		t.Fatalf("expected ErrSimulationNotFound; got %v", err)
	}
}

func TestEventLogService_List_RepoError(t *testing.T) {
	t.Parallel()

	svc := NewEventLogService(nil, &fakeEventRepo{err: errors.New("db down")})
	if _, err := svc.List(context.Background(), LogFilter{}); err == nil {
		t.Fatal("expected repo error")
	}
}

func TestEventLogService_List_OtherUsersSimulation(t *testing.T) {
	t.Parallel()

	sims := newFakeSimRepo()
	rec := recordFor("sim-1")
	rec.Simulation.CreatedBy = 1
	sims.records["sim-1"] = rec
	frepo := &fakeEventRepo{events: []models.SimulationEvent{{EventID: "1", Type: models.EventSprinkler, Time: 65}}}
	svc := NewEventLogService(sims, frepo)

	if _, err := svc.List(WithUser(context.Background(), 2), LogFilter{SimulationID: "sim-1"}); !errors.Is(err, ErrSimulationNotFound) {
		t.Fatalf("expected ErrSimulationNotFound, got %v", err)
	}
	if frepo.calls != 0 {
		t.Fatalf("events of a hidden simulation were queried")
	}
	out, err := svc.List(WithUser(context.Background(), 1), LogFilter{SimulationID: "sim-1"})
	if err != nil || len(out) != 1 {
		t.Fatalf("owner's events = %+v, %v", out, err)
	}
}
