package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jewel-backend/internal/apperrors"
	"jewel-backend/internal/models"
)

const pieceColumns = `id, counter_id, box_id, barcode, type, weight, vweight,
	date, status, created_at, updated_at`

type PieceRepository struct {
	DB *pgxpool.Pool
}

func NewPieceRepository(db *pgxpool.Pool) *PieceRepository {
	return &PieceRepository{DB: db}
}

func scanPiece(row pgx.Row) (*models.Piece, error) {
	var p models.Piece
	err := row.Scan(&p.ID, &p.CounterID, &p.BoxID, &p.Barcode, &p.Type,
		&p.Weight, &p.VWeight, &p.Date, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts the piece and refreshes its container's aggregates in one
// transaction, so a reader never sees the piece without its weight counted.
func (r *PieceRepository) Create(ctx context.Context, p *models.Piece) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO pieces(counter_id, box_id, barcode, type, weight, vweight, date, status)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at, updated_at`,
		p.CounterID, p.BoxID, p.Barcode, p.Type, p.Weight, p.VWeight, p.Date, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}

	if err := recomputeAggregates(ctx, tx, p.BoxID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PieceRepository) Get(ctx context.Context, id int) (*models.Piece, error) {
	p, err := scanPiece(r.DB.QueryRow(ctx,
		`SELECT `+pieceColumns+` FROM pieces WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("piece", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PieceRepository) list(ctx context.Context, query string, args ...any) ([]*models.Piece, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pieces []*models.Piece
	for rows.Next() {
		p, err := scanPiece(rows)
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, p)
	}
	return pieces, rows.Err()
}

func (r *PieceRepository) List(ctx context.Context) ([]*models.Piece, error) {
	return r.list(ctx, `SELECT `+pieceColumns+` FROM pieces ORDER BY id`)
}

func (r *PieceRepository) ListByContainer(ctx context.Context, boxID int) ([]*models.Piece, error) {
	return r.list(ctx,
		`SELECT `+pieceColumns+` FROM pieces WHERE box_id=$1 ORDER BY id`, boxID)
}

// Update rewrites the piece's editable fields. Location and status are out of
// scope here; Transfer and Sell own those transitions. The recompute targets
// the box_id returned by the UPDATE itself, not the caller's copy: the piece
// may have been transferred since the caller read it, and the row lock taken
// here serializes against Transfer's SELECT ... FOR UPDATE.
func (r *PieceRepository) Update(ctx context.Context, p *models.Piece) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var boxID int
	err = tx.QueryRow(ctx,
		`UPDATE pieces SET barcode=$1, type=$2, weight=$3, vweight=$4, date=$5,
            updated_at=CURRENT_TIMESTAMP
         WHERE id=$6
         RETURNING box_id`,
		p.Barcode, p.Type, p.Weight, p.VWeight, p.Date, p.ID).Scan(&boxID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("piece", p.ID)
	}
	if err != nil {
		return err
	}

	if err := recomputeAggregates(ctx, tx, boxID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PieceRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var boxID int
	err = tx.QueryRow(ctx,
		`DELETE FROM pieces WHERE id=$1 RETURNING box_id`, id).Scan(&boxID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("piece", id)
	}
	if err != nil {
		return err
	}

	if err := recomputeAggregates(ctx, tx, boxID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Transfer moves a piece to another container and refreshes both containers'
// aggregates in a single transaction. The source row is locked first so two
// concurrent transfers of the same piece serialize instead of double-counting.
// counter_id is derived from the target container inside the same statement,
// so a container reassignment committing between the caller's read and this
// transaction cannot leave the piece pointing at a stale counter.
func (r *PieceRepository) Transfer(ctx context.Context, pieceID, targetBoxID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var sourceBoxID int
	err = tx.QueryRow(ctx,
		`SELECT box_id FROM pieces WHERE id=$1 FOR UPDATE`, pieceID).Scan(&sourceBoxID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("piece", pieceID)
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE pieces SET box_id=$1,
            counter_id=(SELECT counter_id FROM containers WHERE id=$1),
            updated_at=CURRENT_TIMESTAMP
         WHERE id=$2`,
		targetBoxID, pieceID)
	if err != nil {
		return err
	}

	if err := recomputeAggregates(ctx, tx, sourceBoxID); err != nil {
		return err
	}
	if sourceBoxID != targetBoxID {
		if err := recomputeAggregates(ctx, tx, targetBoxID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Sell marks an AVAILABLE piece SOLD and drops its weight from the container
// aggregates. Selling an already-sold piece is a conflict, not a no-op.
func (r *PieceRepository) Sell(ctx context.Context, pieceID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var boxID int
	err = tx.QueryRow(ctx,
		`UPDATE pieces SET status=$1, updated_at=CURRENT_TIMESTAMP
         WHERE id=$2 AND status=$3
         RETURNING box_id`,
		models.PieceStatusSold, pieceID, models.PieceStatusAvailable).Scan(&boxID)
	if errors.Is(err, pgx.ErrNoRows) {
		// Distinguish a missing piece from one already sold.
		var status string
		lookupErr := tx.QueryRow(ctx,
			`SELECT status FROM pieces WHERE id=$1`, pieceID).Scan(&status)
		if errors.Is(lookupErr, pgx.ErrNoRows) {
			return apperrors.NotFound("piece", pieceID)
		}
		if lookupErr != nil {
			return lookupErr
		}
		return apperrors.Conflictf("piece %d is already sold", pieceID)
	}
	if err != nil {
		return err
	}

	if err := recomputeAggregates(ctx, tx, boxID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PieceRepository) CountByContainer(ctx context.Context, boxID int) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM pieces WHERE box_id=$1`, boxID).Scan(&count)
	return count, err
}
