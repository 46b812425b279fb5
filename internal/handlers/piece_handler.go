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

type PieceHandler struct {
	Service *services.PieceService
}

func NewPieceHandler(s *services.PieceService) *PieceHandler {
	return &PieceHandler{Service: s}
}

func (h *PieceHandler) CreatePiece(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePieceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	piece, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	cache.InvalidateInventoryCaches(context.Background())
	utils.JSON(w, http.StatusCreated, piece)
}

func (h *PieceHandler) ListPieces(w http.ResponseWriter, r *http.Request) {
	pieces, err := h.Service.List(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	if pieces == nil {
		pieces = []*models.Piece{}
	}
	utils.JSON(w, http.StatusOK, pieces)
}

func (h *PieceHandler) ListByContainer(w http.ResponseWriter, r *http.Request) {
	boxID, err := strconv.Atoi(r.URL.Query().Get("boxId"))
	if err != nil {
		http.Error(w, "boxId parameter is required", http.StatusBadRequest)
		return
	}

	pieces, err := h.Service.ListByContainer(r.Context(), boxID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if pieces == nil {
		pieces = []*models.Piece{}
	}
	utils.JSON(w, http.StatusOK, pieces)
}

func (h *PieceHandler) UpdatePiece(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid piece id", http.StatusBadRequest)
		return
	}

	var req models.UpdatePieceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	piece, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	cache.InvalidateInventoryCaches(context.Background())
	utils.JSON(w, http.StatusOK, piece)
}

func (h *PieceHandler) DeletePiece(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid piece id", http.StatusBadRequest)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}

	cache.InvalidateInventoryCaches(context.Background())
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Piece deleted"})
}

// TransferPiece moves a piece to another container:
// POST /api/pieces/transfer?pieceId=N&targetBoxId=M
func (h *PieceHandler) TransferPiece(w http.ResponseWriter, r *http.Request) {
	pieceID, err := strconv.Atoi(r.URL.Query().Get("pieceId"))
	if err != nil {
		http.Error(w, "pieceId parameter is required", http.StatusBadRequest)
		return
	}
	targetBoxID, err := strconv.Atoi(r.URL.Query().Get("targetBoxId"))
	if err != nil {
		http.Error(w, "targetBoxId parameter is required", http.StatusBadRequest)
		return
	}

	piece, err := h.Service.Transfer(r.Context(), pieceID, targetBoxID)
	if err != nil {
		utils.Error(w, err)
		return
	}

	cache.InvalidateInventoryCaches(context.Background())
	utils.JSON(w, http.StatusOK, piece)
}

// SellPiece marks a piece sold: POST /api/pieces/sell?pieceId=N
func (h *PieceHandler) SellPiece(w http.ResponseWriter, r *http.Request) {
	pieceID, err := strconv.Atoi(r.URL.Query().Get("pieceId"))
	if err != nil {
		http.Error(w, "pieceId parameter is required", http.StatusBadRequest)
		return
	}

	piece, err := h.Service.Sell(r.Context(), pieceID)
	if err != nil {
		utils.Error(w, err)
		return
	}

	cache.InvalidateInventoryCaches(context.Background())
	utils.JSON(w, http.StatusOK, piece)
}
