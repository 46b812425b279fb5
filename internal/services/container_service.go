package services

import (
	"context"
	"strings"

	"jewel-backend/internal/apperrors"
	"jewel-backend/internal/models"
)

type ContainerService struct {
	containers ContainerStore
	counters   CounterStore
	pieces     PieceStore
}

func NewContainerService(containers ContainerStore, counters CounterStore, pieces PieceStore) *ContainerService {
	return &ContainerService{containers: containers, counters: counters, pieces: pieces}
}

func validateContainerFields(containerType, identity string, fixedWeight float64) error {
	if !models.ValidContainerType(containerType) {
		return apperrors.Validationf("container type must be BOX or TRAY, got %q", containerType)
	}
	if strings.TrimSpace(identity) == "" {
		return apperrors.Validationf("container identity is required")
	}
	if fixedWeight < 0 {
		return apperrors.Validationf("fixedWeight must not be negative")
	}
	return nil
}

func (s *ContainerService) Create(ctx context.Context, req *models.CreateContainerRequest) (*models.Container, error) {
	if err := validateContainerFields(req.Type, req.Identity, req.FixedWeight); err != nil {
		return nil, err
	}

	// Counter must exist before anything hangs off it.
	if _, err := s.counters.Get(ctx, req.CounterID); err != nil {
		return nil, err
	}

	container := &models.Container{
		CounterID:   req.CounterID,
		Type:        req.Type,
		Identity:    strings.TrimSpace(req.Identity),
		Date:        req.Date,
		FixedWeight: req.FixedWeight,
		GrossWeight: req.FixedWeight,
		TotalAll:    req.FixedWeight,
	}
	if err := s.containers.Create(ctx, container); err != nil {
		return nil, err
	}
	return container, nil
}

func (s *ContainerService) Get(ctx context.Context, id int) (*models.Container, error) {
	return s.containers.Get(ctx, id)
}

func (s *ContainerService) List(ctx context.Context) ([]*models.Container, error) {
	return s.containers.List(ctx)
}

func (s *ContainerService) ListByCounter(ctx context.Context, counterID int) ([]*models.Container, error) {
	if _, err := s.counters.Get(ctx, counterID); err != nil {
		return nil, err
	}
	return s.containers.ListByCounter(ctx, counterID)
}

// Update edits a container in place. A changed counterId reassigns the
// container together with all of its pieces; the store performs that move
// and the aggregate refresh atomically.
func (s *ContainerService) Update(ctx context.Context, id int, req *models.UpdateContainerRequest) (*models.Container, error) {
	if err := validateContainerFields(req.Type, req.Identity, req.FixedWeight); err != nil {
		return nil, err
	}

	container, err := s.containers.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CounterID != 0 && req.CounterID != container.CounterID {
		if _, err := s.counters.Get(ctx, req.CounterID); err != nil {
			return nil, err
		}
		container.CounterID = req.CounterID
	}

	container.Type = req.Type
	container.Identity = strings.TrimSpace(req.Identity)
	container.Date = req.Date
	container.FixedWeight = req.FixedWeight

	if err := s.containers.Update(ctx, container); err != nil {
		return nil, err
	}
	return s.containers.Get(ctx, id)
}

// Delete removes an empty container. Containers still holding pieces (SOLD
// ones included) are protected; there is no cascade.
func (s *ContainerService) Delete(ctx context.Context, id int) error {
	if _, err := s.containers.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.pieces.CountByContainer(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Conflictf("container %d still holds %d piece(s)", id, count)
	}

	return s.containers.Delete(ctx, id)
}
