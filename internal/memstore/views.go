package memstore

import (
	"context"

	"jewel-backend/internal/models"
)

// Per-entity views over the single Store, matching the method sets of the
// pgx repositories so either can back the services.

type Counters struct{ s *Store }
type Containers struct{ s *Store }
type Pieces struct{ s *Store }
type Users struct{ s *Store }

func (s *Store) CounterStore() *Counters     { return &Counters{s} }
func (s *Store) ContainerStore() *Containers { return &Containers{s} }
func (s *Store) PieceStore() *Pieces         { return &Pieces{s} }
func (s *Store) UserStore() *Users           { return &Users{s} }

func (v *Counters) Create(ctx context.Context, c *models.Counter) error { return v.s.CreateCounter(ctx, c) }
func (v *Counters) Get(ctx context.Context, id int) (*models.Counter, error) {
	return v.s.GetCounter(ctx, id)
}
func (v *Counters) List(ctx context.Context) ([]*models.Counter, error) { return v.s.ListCounters(ctx) }
func (v *Counters) Update(ctx context.Context, c *models.Counter) error { return v.s.UpdateCounter(ctx, c) }
func (v *Counters) Delete(ctx context.Context, id int) error            { return v.s.DeleteCounter(ctx, id) }

func (v *Containers) Create(ctx context.Context, c *models.Container) error {
	return v.s.CreateContainer(ctx, c)
}
func (v *Containers) Get(ctx context.Context, id int) (*models.Container, error) {
	return v.s.GetContainer(ctx, id)
}
func (v *Containers) List(ctx context.Context) ([]*models.Container, error) {
	return v.s.ListContainers(ctx)
}
func (v *Containers) ListByCounter(ctx context.Context, counterID int) ([]*models.Container, error) {
	return v.s.ListContainersByCounter(ctx, counterID)
}
func (v *Containers) Update(ctx context.Context, c *models.Container) error {
	return v.s.UpdateContainer(ctx, c)
}
func (v *Containers) Delete(ctx context.Context, id int) error { return v.s.DeleteContainer(ctx, id) }
func (v *Containers) CountByCounter(ctx context.Context, counterID int) (int, error) {
	return v.s.CountContainersByCounter(ctx, counterID)
}

func (v *Pieces) Create(ctx context.Context, p *models.Piece) error { return v.s.CreatePiece(ctx, p) }
func (v *Pieces) Get(ctx context.Context, id int) (*models.Piece, error) {
	return v.s.GetPiece(ctx, id)
}
func (v *Pieces) List(ctx context.Context) ([]*models.Piece, error) { return v.s.ListPieces(ctx) }
func (v *Pieces) ListByContainer(ctx context.Context, boxID int) ([]*models.Piece, error) {
	return v.s.ListPiecesByContainer(ctx, boxID)
}
func (v *Pieces) Update(ctx context.Context, p *models.Piece) error { return v.s.UpdatePiece(ctx, p) }
func (v *Pieces) Delete(ctx context.Context, id int) error          { return v.s.DeletePiece(ctx, id) }
func (v *Pieces) Transfer(ctx context.Context, pieceID, targetBoxID int) error {
	return v.s.TransferPiece(ctx, pieceID, targetBoxID)
}
func (v *Pieces) Sell(ctx context.Context, pieceID int) error { return v.s.SellPiece(ctx, pieceID) }
func (v *Pieces) CountByContainer(ctx context.Context, boxID int) (int, error) {
	return v.s.CountPiecesByContainer(ctx, boxID)
}

func (v *Users) Create(ctx context.Context, u *models.User) error { return v.s.CreateUser(ctx, u) }
func (v *Users) Get(ctx context.Context, id int) (*models.User, error) {
	return v.s.GetUser(ctx, id)
}
func (v *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return v.s.GetUserByEmail(ctx, email)
}
func (v *Users) SetTOTP(ctx context.Context, userID int, secret string, enabled bool) error {
	return v.s.SetUserTOTP(ctx, userID, secret, enabled)
}
func (v *Users) Count(ctx context.Context) (int, error) { return v.s.CountUsers(ctx) }
