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

// ContainerHandler serves the /api/boxes routes. The UI calls every
// container a "box"; the type field distinguishes boxes from trays.
type ContainerHandler struct {
	Service *services.ContainerService
}

func NewContainerHandler(s *services.ContainerService) *ContainerHandler {
	return &ContainerHandler{Service: s}
}

func (h *ContainerHandler) CreateContainer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	container, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	cache.InvalidateInventoryCaches(context.Background())
	utils.JSON(w, http.StatusCreated, container)
}

func (h *ContainerHandler) GetContainer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid container id", http.StatusBadRequest)
		return
	}

	container, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, container)
}

func (h *ContainerHandler) ListContainers(w http.ResponseWriter, r *http.Request) {
	containers, err := h.Service.List(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	if containers == nil {
		containers = []*models.Container{}
	}
	utils.JSON(w, http.StatusOK, containers)
}

func (h *ContainerHandler) ListByCounter(w http.ResponseWriter, r *http.Request) {
	counterID, err := strconv.Atoi(r.URL.Query().Get("counterId"))
	if err != nil {
		http.Error(w, "counterId parameter is required", http.StatusBadRequest)
		return
	}

	containers, err := h.Service.ListByCounter(r.Context(), counterID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if containers == nil {
		containers = []*models.Container{}
	}
	utils.JSON(w, http.StatusOK, containers)
}

func (h *ContainerHandler) UpdateContainer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid container id", http.StatusBadRequest)
		return
	}

	var req models.UpdateContainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	container, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	cache.InvalidateInventoryCaches(context.Background())
	utils.JSON(w, http.StatusOK, container)
}

func (h *ContainerHandler) DeleteContainer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid container id", http.StatusBadRequest)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}

	cache.InvalidateInventoryCaches(context.Background())
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Container deleted"})
}
