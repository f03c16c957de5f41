package service

import (
	"context"
	"fmt"
	"strings"

	"tenability/internal/models"
	"tenability/internal/repository"
)

type EventLogService struct {
	simRepo   repository.SimulationRepo
	eventRepo repository.EventRepo
}

func NewEventLogService(simRepo repository.SimulationRepo, eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{simRepo: simRepo, eventRepo: eventRepo}
}

var (
	errInvalidTimeRange = fmt.Errorf("%w: from must be <= to", ErrInvalidRequest)
)

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (repository.EventFilter, error) {
	if f.From != nil && f.To != nil && *f.From > *f.To {
		return repository.EventFilter{}, errInvalidTimeRange
	}
	return repository.EventFilter{
		SimulationID: f.SimulationID,
		From:         f.From,
		To:           f.To,
		Type:         normalizeEventType(f.Type),
	}, nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.SimulationEvent, error) {
	rf, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	if f.SimulationID != "" && s.simRepo != nil {
		if _, err := s.simRepo.Get(ctx, f.SimulationID, UserFrom(ctx)); err != nil {
			return nil, mapNotFound(f.SimulationID, err)
		}
	}
	return s.eventRepo.List(ctx, rf)
}
