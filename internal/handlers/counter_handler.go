package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"jewel-backend/internal/cache"
	"jewel-backend/internal/models"
	"jewel-backend/internal/services"
	"jewel-backend/pkg/utils"
)

type CounterHandler struct {
	Service *services.CounterService
}

func NewCounterHandler(s *services.CounterService) *CounterHandler {
	return &CounterHandler{Service: s}
}

func (h *CounterHandler) CreateCounter(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCounterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	counter, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	cache.InvalidateInventoryCaches(context.Background())
	utils.JSON(w, http.StatusCreated, counter)
}

func (h *CounterHandler) ListCounters(w http.ResponseWriter, r *http.Request) {
	counters, err := h.Service.List(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	if counters == nil {
		counters = []*models.Counter{}
	}
	utils.JSON(w, http.StatusOK, counters)
}

func (h *CounterHandler) UpdateCounter(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid counter id", http.StatusBadRequest)
		return
	}

	var req models.UpdateCounterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	counter, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	cache.InvalidateInventoryCaches(context.Background())
	utils.JSON(w, http.StatusOK, counter)
}

func (h *CounterHandler) DeleteCounter(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid counter id", http.StatusBadRequest)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}

	cache.InvalidateInventoryCaches(context.Background())
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Counter deleted"})
}
