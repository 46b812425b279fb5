package services

import (
	"context"

	"jewel-backend/internal/models"
)

type DashboardService struct {
	dashboard DashboardStore
}

func NewDashboardService(dashboard DashboardStore) *DashboardService {
	return &DashboardService{dashboard: dashboard}
}

// Summary returns the whole-inventory rollup.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	return s.dashboard.Summary(ctx)
}
