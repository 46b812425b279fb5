package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"jewel-backend/internal/models"
)

type DashboardRepository struct {
	DB *pgxpool.Pool
}

func NewDashboardRepository(db *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{DB: db}
}

// Summary rolls the whole inventory up in two queries. Weights come from the
// piece rows, not the container aggregate columns, so the dashboard stays
// honest even if an aggregate column were ever stale.
func (r *DashboardRepository) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	var s models.DashboardSummary

	var fixedTotal float64
	err := r.DB.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM counters),
			(SELECT COUNT(*) FROM containers WHERE type='BOX'),
			(SELECT COUNT(*) FROM containers WHERE type='TRAY'),
			(SELECT COALESCE(SUM(fixed_weight), 0) FROM containers)`,
	).Scan(&s.Counters, &s.Boxes, &s.Trays, &fixedTotal)
	if err != nil {
		return nil, err
	}

	err = r.DB.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'AVAILABLE'),
			COUNT(*) FILTER (WHERE status = 'SOLD'),
			COALESCE(SUM(weight) FILTER (WHERE status = 'AVAILABLE'), 0),
			COALESCE(SUM(vweight) FILTER (WHERE status = 'AVAILABLE'), 0)
		FROM pieces`,
	).Scan(&s.Pieces, &s.AvailablePieces, &s.SoldPieces, &s.NetWeight, &s.VariableWeight)
	if err != nil {
		return nil, err
	}

	s.TotalAll = fixedTotal + s.NetWeight + s.VariableWeight
	return &s, nil
}
