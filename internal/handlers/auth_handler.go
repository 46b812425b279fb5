package handlers

import (
	"encoding/json"
	"net/http"

	"jewel-backend/internal/apperrors"
	"jewel-backend/internal/models"
	"jewel-backend/internal/services"
	"jewel-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.UserService
}

func NewAuthHandler(s *services.UserService) *AuthHandler {
	return &AuthHandler{Service: s}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.Signup(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

// Login issues a session token, or a temp token when 2FA is enabled for the
// account (the client then calls /api/totp/verify with the code).
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, step1, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		// Credential failures surface as 401 here, not 400.
		if apperrors.IsValidation(err) {
			utils.JSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}
		utils.Error(w, err)
		return
	}

	if step1 != nil {
		utils.JSON(w, http.StatusOK, step1)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}
