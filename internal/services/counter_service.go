package services

import (
	"context"
	"strings"

	"jewel-backend/internal/apperrors"
	"jewel-backend/internal/models"
)

type CounterService struct {
	counters   CounterStore
	containers ContainerStore
}

func NewCounterService(counters CounterStore, containers ContainerStore) *CounterService {
	return &CounterService{counters: counters, containers: containers}
}

func (s *CounterService) Create(ctx context.Context, req *models.CreateCounterRequest) (*models.Counter, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validationf("counter name is required")
	}

	counter := &models.Counter{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	if err := s.counters.Create(ctx, counter); err != nil {
		return nil, err
	}
	return counter, nil
}

func (s *CounterService) Get(ctx context.Context, id int) (*models.Counter, error) {
	return s.counters.Get(ctx, id)
}

func (s *CounterService) List(ctx context.Context) ([]*models.Counter, error) {
	return s.counters.List(ctx)
}

func (s *CounterService) Update(ctx context.Context, id int, req *models.UpdateCounterRequest) (*models.Counter, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validationf("counter name is required")
	}

	counter, err := s.counters.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	counter.Name = strings.TrimSpace(req.Name)
	counter.Description = req.Description
	if err := s.counters.Update(ctx, counter); err != nil {
		return nil, err
	}
	return counter, nil
}

// Delete removes an empty counter. Counters still holding containers are
// protected; there is no cascade.
func (s *CounterService) Delete(ctx context.Context, id int) error {
	if _, err := s.counters.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.containers.CountByCounter(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Conflictf("counter %d still holds %d container(s)", id, count)
	}

	return s.counters.Delete(ctx, id)
}
