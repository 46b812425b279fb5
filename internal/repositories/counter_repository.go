package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jewel-backend/internal/apperrors"
	"jewel-backend/internal/models"
)

type CounterRepository struct {
	DB *pgxpool.Pool
}

func NewCounterRepository(db *pgxpool.Pool) *CounterRepository {
	return &CounterRepository{DB: db}
}

func (r *CounterRepository) Create(ctx context.Context, c *models.Counter) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO counters(name, description)
         VALUES($1, $2)
         RETURNING id, created_at, updated_at`,
		c.Name, c.Description,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CounterRepository) Get(ctx context.Context, id int) (*models.Counter, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at
         FROM counters WHERE id=$1`, id)

	var counter models.Counter
	err := row.Scan(&counter.ID, &counter.Name, &counter.Description,
		&counter.CreatedAt, &counter.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("counter", id)
	}
	if err != nil {
		return nil, err
	}
	return &counter, nil
}

func (r *CounterRepository) List(ctx context.Context) ([]*models.Counter, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, description, created_at, updated_at
         FROM counters ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counters []*models.Counter
	for rows.Next() {
		var counter models.Counter
		err := rows.Scan(&counter.ID, &counter.Name, &counter.Description,
			&counter.CreatedAt, &counter.UpdatedAt)
		if err != nil {
			return nil, err
		}
		counters = append(counters, &counter)
	}
	return counters, rows.Err()
}

func (r *CounterRepository) Update(ctx context.Context, c *models.Counter) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE counters SET name=$1, description=$2, updated_at=CURRENT_TIMESTAMP
         WHERE id=$3`,
		c.Name, c.Description, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("counter", c.ID)
	}
	return nil
}

func (r *CounterRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM counters WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("counter", id)
	}
	return nil
}
