package service

import (
	"context"
	"time"

	"tenability/internal/models"
	"tenability/internal/repository"
)

type seriesProvider interface {
	RoomSeries(ctx context.Context, id, room string) (models.RoomSeries, error)
}

// ReplayService plays a room's samples back at a fixed wall-clock tick.
type ReplayService struct {
	series    seriesProvider
	eventRepo repository.EventRepo
}

func NewReplayService(series seriesProvider, eventRepo repository.EventRepo) *ReplayService {
	return &ReplayService{series: series, eventRepo: eventRepo}
}

// Replay emits one frame per tick until the series ends, emit fails or ctx is canceled.
// Each frame carries the activations with time in (previous sample, current sample].
func (s *ReplayService) Replay(ctx context.Context, id, room string, tick time.Duration, emit func(ReplayFrame) error) error {
	rs, err := s.series.RoomSeries(ctx, id, room)
	if err != nil {
		return err
	}
	var events []models.SimulationEvent
	if s.eventRepo != nil {
		events, err = s.eventRepo.List(ctx, repository.EventFilter{SimulationID: id})
		if err != nil {
			return err
		}
	}

	t := time.NewTicker(tick)
	defer t.Stop()

	next := 0 // first event not yet emitted
	for i, sample := range rs {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
			}
		}

		frame := ReplayFrame{Room: room, Index: i, Sample: sample}
		for next < len(events) && events[next].Time <= sample.Time {
			frame.Events = append(frame.Events, events[next])
			next++
		}
		if err := emit(frame); err != nil {
			return err
		}
	}
	return nil
}
