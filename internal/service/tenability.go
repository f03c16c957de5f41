package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"tenability/internal/fed"
	"tenability/internal/logger"
	"tenability/internal/metrics"
	"tenability/internal/models"
	"tenability/internal/report"
	"tenability/internal/repository"
)

type storeProvider interface {
	Store(ctx context.Context, id string) (*fed.Store, error)
}

// TenabilityService computes FED curves for imported simulations.
type TenabilityService struct {
	stores   storeProvider
	events   repository.EventRepo
	defaults fed.Params
	metrics  *metrics.Metrics
	log      *logger.Logger
}

func NewTenabilityService(stores storeProvider, events repository.EventRepo, defaults fed.Params, m *metrics.Metrics, log *logger.Logger) *TenabilityService {
	return &TenabilityService{stores: stores, events: events, defaults: defaults, metrics: m, log: log}
}

func (s *TenabilityService) ComputeCO(ctx context.Context, id string, req PathRequest) (PathResult, error) {
	return s.computePath(ctx, id, models.ModelCO, req)
}

func (s *TenabilityService) ComputeThermal(ctx context.Context, id string, req PathRequest) (PathResult, error) {
	return s.computePath(ctx, id, models.ModelThermal, req)
}

func (s *TenabilityService) computePath(ctx context.Context, id, model string, req PathRequest) (PathResult, error) {
	prm, err := s.params(req.MonitoringHeight, req.Threshold)
	if err != nil {
		return PathResult{}, err
	}
	store, err := s.stores.Store(ctx, id)
	if err != nil {
		return PathResult{}, err
	}

	path := fed.Path{Rooms: req.Rooms, TransitionTimes: req.TransitionTimes}
	series, segments, err := s.compute(store, model, path, prm)
	if err != nil {
		return PathResult{}, err
	}

	rep := fed.Summarize(model, series, segments, prm.Threshold)
	summary := report.Summary(rep)
	if s.log != nil {
		s.log.Infow(summary, "simulation", id, "model", model, "crossed", rep.Crossed)
	}

	res := PathResult{SimulationID: id, Model: model, Series: series, Report: rep, Summary: summary}
	if s.events != nil && len(segments) > 0 {
		zero, end := 0.0, segments[len(segments)-1].End
		f := repository.EventFilter{SimulationID: id, From: &zero}
		if !math.IsNaN(end) {
			f.To = &end
		}
		res.Events, err = s.events.List(ctx, f)
		if err != nil {
			return PathResult{}, err
		}
	}
	return res, nil
}

// PerRoom computes a single-room curve for each room, or for every room when rooms is empty.
func (s *TenabilityService) PerRoom(ctx context.Context, id, model string, rooms []string) ([]RoomResult, error) {
	if model != models.ModelCO && model != models.ModelThermal {
		return nil, fmt.Errorf("%q: %w", model, ErrUnknownModel)
	}
	store, err := s.stores.Store(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		rooms = store.Rooms()
	}

	out := make([]RoomResult, 0, len(rooms))
	for _, room := range rooms {
		series, segments, err := s.compute(store, model, fed.Path{Rooms: []string{room}}, s.defaults)
		if err != nil {
			return nil, err
		}
		out = append(out, RoomResult{
			Room:   room,
			Series: series,
			Report: fed.Summarize(model, series, segments, s.defaults.Threshold),
		})
	}
	return out, nil
}

func (s *TenabilityService) compute(store *fed.Store, model string, path fed.Path, prm fed.Params) (models.FEDSeries, []models.Segment, error) {
	start := time.Now()
	var (
		series models.FEDSeries
		err    error
	)
	switch model {
	case models.ModelCO:
		series, err = fed.ComputeCO(store, path, prm)
	case models.ModelThermal:
		series, err = fed.ComputeThermal(store, store, path, prm)
	default:
		return models.FEDSeries{}, nil, fmt.Errorf("%q: %w", model, ErrUnknownModel)
	}
	s.metrics.FED(model, time.Since(start), err)
	if err != nil {
		return models.FEDSeries{}, nil, err
	}

	segments, err := fed.Segments(store, path)
	if err != nil {
		return models.FEDSeries{}, nil, err
	}
	return series, segments, nil
}

func (s *TenabilityService) params(height, threshold *float64) (fed.Params, error) {
	prm := s.defaults
	if height != nil {
		if *height < 0 {
			return fed.Params{}, fmt.Errorf("monitoring height %g: %w", *height, ErrInvalidRequest)
		}
		prm.MonitoringHeight = *height
	}
	if threshold != nil {
		if !(*threshold > 0 && *threshold <= 1) {
			return fed.Params{}, fmt.Errorf("threshold %g outside (0, 1]: %w", *threshold, ErrInvalidRequest)
		}
		prm.Threshold = *threshold
	}
	return prm, nil
}
