package services

import (
	"context"
	"strings"

	"jewel-backend/internal/apperrors"
	"jewel-backend/internal/metrics"
	"jewel-backend/internal/models"
)

type PieceService struct {
	pieces     PieceStore
	containers ContainerStore
}

func NewPieceService(pieces PieceStore, containers ContainerStore) *PieceService {
	return &PieceService{pieces: pieces, containers: containers}
}

func validatePieceFields(barcode string, weight, vweight float64) error {
	if strings.TrimSpace(barcode) == "" {
		return apperrors.Validationf("piece barcode is required")
	}
	if weight < 0 {
		return apperrors.Validationf("weight must not be negative")
	}
	if vweight < 0 {
		return apperrors.Validationf("vweight must not be negative")
	}
	return nil
}

// Create attaches a new AVAILABLE piece to a container. The authoritative
// counterId comes from the container; a caller-supplied counterId that
// disagrees with it is rejected rather than trusted.
func (s *PieceService) Create(ctx context.Context, req *models.CreatePieceRequest) (*models.Piece, error) {
	if err := validatePieceFields(req.Barcode, req.Weight, req.VWeight); err != nil {
		return nil, err
	}

	container, err := s.containers.Get(ctx, req.BoxID)
	if err != nil {
		return nil, err
	}
	if req.CounterID != 0 && req.CounterID != container.CounterID {
		return nil, apperrors.NotFound("container", req.BoxID)
	}

	piece := &models.Piece{
		CounterID: container.CounterID,
		BoxID:     container.ID,
		Barcode:   strings.TrimSpace(req.Barcode),
		Type:      req.Type,
		Weight:    req.Weight,
		VWeight:   req.VWeight,
		Date:      req.Date,
		Status:    models.PieceStatusAvailable,
	}
	if err := s.pieces.Create(ctx, piece); err != nil {
		return nil, err
	}
	return piece, nil
}

func (s *PieceService) Get(ctx context.Context, id int) (*models.Piece, error) {
	return s.pieces.Get(ctx, id)
}

func (s *PieceService) List(ctx context.Context) ([]*models.Piece, error) {
	return s.pieces.List(ctx)
}

func (s *PieceService) ListByContainer(ctx context.Context, boxID int) ([]*models.Piece, error) {
	if _, err := s.containers.Get(ctx, boxID); err != nil {
		return nil, err
	}
	return s.pieces.ListByContainer(ctx, boxID)
}

// Update edits a piece in place. Location never changes here; that is
// Transfer's exclusive responsibility.
func (s *PieceService) Update(ctx context.Context, id int, req *models.UpdatePieceRequest) (*models.Piece, error) {
	if err := validatePieceFields(req.Barcode, req.Weight, req.VWeight); err != nil {
		return nil, err
	}

	piece, err := s.pieces.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	piece.Barcode = strings.TrimSpace(req.Barcode)
	piece.Type = req.Type
	piece.Weight = req.Weight
	piece.VWeight = req.VWeight
	piece.Date = req.Date

	if err := s.pieces.Update(ctx, piece); err != nil {
		return nil, err
	}
	// Re-read rather than return the local copy; the piece may have moved
	// between the Get above and the store's update.
	return s.pieces.Get(ctx, id)
}

func (s *PieceService) Delete(ctx context.Context, id int) error {
	return s.pieces.Delete(ctx, id)
}

// Transfer moves a piece into another container. The store derives the
// piece's new counterId from the target container at move time. Status does
// not gate the move; SOLD pieces travel too, they just weigh nothing in the
// aggregates.
func (s *PieceService) Transfer(ctx context.Context, pieceID, targetBoxID int) (*models.Piece, error) {
	if _, err := s.pieces.Get(ctx, pieceID); err != nil {
		return nil, err
	}
	if _, err := s.containers.Get(ctx, targetBoxID); err != nil {
		return nil, err
	}

	if err := s.pieces.Transfer(ctx, pieceID, targetBoxID); err != nil {
		return nil, err
	}
	metrics.PieceTransfersTotal.Inc()

	return s.pieces.Get(ctx, pieceID)
}

// Sell marks a piece SOLD. A second sell of the same piece is a conflict.
func (s *PieceService) Sell(ctx context.Context, pieceID int) (*models.Piece, error) {
	if err := s.pieces.Sell(ctx, pieceID); err != nil {
		return nil, err
	}
	metrics.PiecesSoldTotal.Inc()

	return s.pieces.Get(ctx, pieceID)
}
