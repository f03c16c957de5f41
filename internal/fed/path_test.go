package fed

import (
	"errors"
	"testing"

	"tenability/internal/models"
)

func TestBoundaries(t *testing.T) {
	t.Parallel()

	s := mustStore(t, map[string]models.RoomSeries{
		"A": uniformRoom(120, smokyUpper(0)),
		"B": uniformRoom(300, smokyUpper(0)),
		"C": uniformRoom(300, smokyUpper(0)),
	})

	tests := []struct {
		name    string
		path    Path
		want    []float64
		wantErr error
	}{
		{name: "single room runs to its end", path: Path{Rooms: []string{"B"}}, want: []float64{0, 300}},
		{name: "explicit end is kept", path: Path{Rooms: []string{"A", "B"}, TransitionTimes: []float64{30, 90}}, want: []float64{0, 30, 90}},
		{name: "implicit end comes from first room", path: Path{Rooms: []string{"A", "B"}, TransitionTimes: []float64{60}}, want: []float64{0, 60, 120}},
		{name: "two missing times", path: Path{Rooms: []string{"A", "B", "C"}}, wantErr: ErrInvalidPath},
		{name: "too many times", path: Path{Rooms: []string{"A"}, TransitionTimes: []float64{10, 20}}, wantErr: ErrInvalidPath},
		{name: "no rooms", path: Path{}, wantErr: ErrInvalidPath},
		{name: "decreasing times", path: Path{Rooms: []string{"B", "C"}, TransitionTimes: []float64{90, 60}}, wantErr: ErrInvalidPath},
		{name: "implicit end before last transition", path: Path{Rooms: []string{"A", "B"}, TransitionTimes: []float64{200}}, wantErr: ErrInvalidPath},
		{name: "unknown first room", path: Path{Rooms: []string{"Z"}}, wantErr: ErrRoomNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Boundaries(s, tc.path)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertFloats(t, "boundaries", got, tc.want)
		})
	}
}

func TestBoundaries_DoesNotMutateCallerTimes(t *testing.T) {
	t.Parallel()

	s := mustStore(t, map[string]models.RoomSeries{"A": uniformRoom(120, smokyUpper(0)), "B": uniformRoom(120, smokyUpper(0))})
	times := make([]float64, 1, 4)
	times[0] = 60
	p := Path{Rooms: []string{"A", "B"}, TransitionTimes: times}
	if _, err := Boundaries(s, p); err != nil {
		t.Fatalf("Boundaries: %v", err)
	}
	if _, err := ComputeCO(s, p, DefaultParams()); err != nil {
		t.Fatalf("ComputeCO: %v", err)
	}
	if len(p.TransitionTimes) != 1 || times[:2][1] != 0 {
		t.Fatalf("caller times mutated: %v", times[:2])
	}
}

func TestSegments(t *testing.T) {
	t.Parallel()

	s := mustStore(t, map[string]models.RoomSeries{"A": uniformRoom(180, smokyUpper(0)), "B": uniformRoom(240, smokyUpper(0))})
	segs, err := Segments(s, Path{Rooms: []string{"A", "B"}, TransitionTimes: []float64{45}})
	if err != nil {
		t.Fatalf("Segments: %v", err)
	}
	want := []models.Segment{{Room: "A", Start: 0, End: 45}, {Room: "B", Start: 45, End: 180}}
	if len(segs) != len(want) {
		t.Fatalf("segments=%+v", segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Fatalf("segment %d = %+v want %+v", i, segs[i], want[i])
		}
	}
}

func TestClassify_StrictlyAboveMeansLowerLayer(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		h1, h2 float64
		want   Layer
	}{
		{"interface above monitor", 2.5, 2.1, LowerLayer},
		{"average exactly at monitor", 2.5, 1.5, UpperLayer},
		{"interface below monitor", 1.0, 1.2, UpperLayer},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			got := Classify(models.Sample{LayerHeight: c.h1}, models.Sample{LayerHeight: c.h2}, 2)
			if got != c.want {
				t.Fatalf("Classify=%v want %v", got, c.want)
			}
		})
	}
}
