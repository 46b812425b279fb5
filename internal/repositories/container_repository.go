package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jewel-backend/internal/apperrors"
	"jewel-backend/internal/models"
)

const containerColumns = `id, counter_id, type, identity, date, fixed_weight,
	net_weight, variable_weight, gross_weight, total_all, total_pieces,
	created_at, updated_at`

type ContainerRepository struct {
	DB *pgxpool.Pool
}

func NewContainerRepository(db *pgxpool.Pool) *ContainerRepository {
	return &ContainerRepository{DB: db}
}

func scanContainer(row pgx.Row) (*models.Container, error) {
	var c models.Container
	err := row.Scan(&c.ID, &c.CounterID, &c.Type, &c.Identity, &c.Date,
		&c.FixedWeight, &c.NetWeight, &c.VariableWeight, &c.GrossWeight,
		&c.TotalAll, &c.TotalPieces, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContainerRepository) Create(ctx context.Context, c *models.Container) error {
	// A new container holds no pieces, so gross weight starts at the tare.
	return r.DB.QueryRow(ctx,
		`INSERT INTO containers(counter_id, type, identity, date, fixed_weight, gross_weight, total_all)
         VALUES($1, $2, $3, $4, $5, $5, $5)
         RETURNING id, created_at, updated_at`,
		c.CounterID, c.Type, c.Identity, c.Date, c.FixedWeight,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ContainerRepository) Get(ctx context.Context, id int) (*models.Container, error) {
	c, err := scanContainer(r.DB.QueryRow(ctx,
		`SELECT `+containerColumns+` FROM containers WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("container", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ContainerRepository) list(ctx context.Context, query string, args ...any) ([]*models.Container, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var containers []*models.Container
	for rows.Next() {
		c, err := scanContainer(rows)
		if err != nil {
			return nil, err
		}
		containers = append(containers, c)
	}
	return containers, rows.Err()
}

func (r *ContainerRepository) List(ctx context.Context) ([]*models.Container, error) {
	return r.list(ctx,
		`SELECT `+containerColumns+` FROM containers ORDER BY id`)
}

func (r *ContainerRepository) ListByCounter(ctx context.Context, counterID int) ([]*models.Container, error) {
	return r.list(ctx,
		`SELECT `+containerColumns+` FROM containers WHERE counter_id=$1 ORDER BY id`,
		counterID)
}

// Update rewrites the container's own fields and, when the counter changed,
// drags every attached piece along so piece.counter_id stays consistent.
// Derived weight columns are recomputed because fixed_weight may have moved.
func (r *ContainerRepository) Update(ctx context.Context, c *models.Container) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE containers SET counter_id=$1, type=$2, identity=$3, date=$4,
            fixed_weight=$5, updated_at=CURRENT_TIMESTAMP
         WHERE id=$6`,
		c.CounterID, c.Type, c.Identity, c.Date, c.FixedWeight, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("container", c.ID)
	}

	_, err = tx.Exec(ctx,
		`UPDATE pieces SET counter_id=$1, updated_at=CURRENT_TIMESTAMP
         WHERE box_id=$2 AND counter_id <> $1`,
		c.CounterID, c.ID)
	if err != nil {
		return err
	}

	if err := recomputeAggregates(ctx, tx, c.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ContainerRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM containers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("container", id)
	}
	return nil
}

func (r *ContainerRepository) CountByCounter(ctx context.Context, counterID int) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM containers WHERE counter_id=$1`, counterID).Scan(&count)
	return count, err
}
