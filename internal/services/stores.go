package services

import (
	"context"

	"jewel-backend/internal/models"
)

// Store contracts the services orchestrate over. The pgx repositories
// implement them against Postgres; internal/memstore implements them in
// memory for tests. Transfer and Sell are defined on the store because both
// must be atomic with the aggregate recompute, which only the storage layer
// can guarantee.

type CounterStore interface {
	Create(ctx context.Context, c *models.Counter) error
	Get(ctx context.Context, id int) (*models.Counter, error)
	List(ctx context.Context) ([]*models.Counter, error)
	Update(ctx context.Context, c *models.Counter) error
	Delete(ctx context.Context, id int) error
}

type ContainerStore interface {
	Create(ctx context.Context, c *models.Container) error
	Get(ctx context.Context, id int) (*models.Container, error)
	List(ctx context.Context) ([]*models.Container, error)
	ListByCounter(ctx context.Context, counterID int) ([]*models.Container, error)
	Update(ctx context.Context, c *models.Container) error
	Delete(ctx context.Context, id int) error
	CountByCounter(ctx context.Context, counterID int) (int, error)
}

type PieceStore interface {
	Create(ctx context.Context, p *models.Piece) error
	Get(ctx context.Context, id int) (*models.Piece, error)
	List(ctx context.Context) ([]*models.Piece, error)
	ListByContainer(ctx context.Context, boxID int) ([]*models.Piece, error)
	Update(ctx context.Context, p *models.Piece) error
	Delete(ctx context.Context, id int) error
	Transfer(ctx context.Context, pieceID, targetBoxID int) error
	Sell(ctx context.Context, pieceID int) error
	CountByContainer(ctx context.Context, boxID int) (int, error)
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SetTOTP(ctx context.Context, userID int, secret string, enabled bool) error
	Count(ctx context.Context) (int, error)
}

type DashboardStore interface {
	Summary(ctx context.Context) (*models.DashboardSummary, error)
}
