package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"jewel-backend/internal/apperrors"
)

// JSON writes data as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error maps the ledger's error kinds onto HTTP status codes: validation
// 400, not found 404, conflict 409, everything else 500 with the detail kept
// out of the response body.
func Error(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsValidation(err):
		JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case apperrors.IsNotFound(err):
		JSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case apperrors.IsConflict(err):
		JSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		log.Printf("[HTTP] internal error: %v", err)
		JSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}
