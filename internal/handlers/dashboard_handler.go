package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"jewel-backend/internal/cache"
	"jewel-backend/internal/models"
	"jewel-backend/internal/services"
	"jewel-backend/pkg/utils"
)

type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(s *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: s}
}

// Summary serves the rollup, cached for one minute. Every inventory write
// invalidates the key, so the TTL only bounds staleness under cache misses
// of the invalidation itself.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.GetCached(r.Context(), cache.DashboardKey); ok {
		var cached models.DashboardSummary
		if json.Unmarshal(data, &cached) == nil {
			utils.JSON(w, http.StatusOK, &cached)
			return
		}
	}

	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}

	if data, err := json.Marshal(summary); err == nil {
		cache.SetCached(r.Context(), cache.DashboardKey, data, time.Minute)
	}
	utils.JSON(w, http.StatusOK, summary)
}
