package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the
// aggregate recompute can run standalone or inside a piece transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// recomputeAggregates rederives a container's weight and count columns from
// its current piece rows. Every piece mutation must call this for each
// container it touched, inside the same transaction as the mutation.
func recomputeAggregates(ctx context.Context, q querier, containerID int) error {
	_, err := q.Exec(ctx, `
		UPDATE containers c SET
			net_weight      = agg.net,
			variable_weight = agg.variable,
			gross_weight    = c.fixed_weight + agg.net,
			total_all       = c.fixed_weight + agg.net + agg.variable,
			total_pieces    = agg.cnt,
			updated_at      = CURRENT_TIMESTAMP
		FROM (
			SELECT
				COALESCE(SUM(weight) FILTER (WHERE status = 'AVAILABLE'), 0)  AS net,
				COALESCE(SUM(vweight) FILTER (WHERE status = 'AVAILABLE'), 0) AS variable,
				COUNT(*)                                                      AS cnt
			FROM pieces WHERE box_id = $1
		) agg
		WHERE c.id = $1`,
		containerID)
	return err
}
