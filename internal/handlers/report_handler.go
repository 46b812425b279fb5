package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"jewel-backend/internal/services"
	"jewel-backend/internal/timeutil"
	"jewel-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// StockPDF serves the printable stock report, whole inventory by default or
// one counter via ?counterId=N.
func (h *ReportHandler) StockPDF(w http.ResponseWriter, r *http.Request) {
	counterID := 0
	if v := r.URL.Query().Get("counterId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "Invalid counterId", http.StatusBadRequest)
			return
		}
		counterID = id
	}

	pdf, err := h.Service.GenerateStockPDF(r.Context(), counterID)
	if err != nil {
		utils.Error(w, err)
		return
	}

	filename := fmt.Sprintf("stock-report-%s.pdf", timeutil.Now().Format(timeutil.DateLayout))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(pdf)
}
