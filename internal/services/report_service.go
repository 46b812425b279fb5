package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"jewel-backend/internal/models"
	"jewel-backend/internal/timeutil"
)

// StockReportData holds everything the stock PDF renders: counters with
// their containers, plus grand totals across the selection.
type StockReportData struct {
	Counters    []*models.Counter
	Containers  map[int][]*models.Container // keyed by counter id
	NetWeight   float64
	Variable    float64
	TotalAll    float64
	TotalPieces int
}

// ReportService generates the printable stock report.
type ReportService struct {
	counters   CounterStore
	containers ContainerStore
}

func NewReportService(counters CounterStore, containers ContainerStore) *ReportService {
	return &ReportService{counters: counters, containers: containers}
}

// GetStockReportData collects report data for one counter (counterID > 0) or
// the whole inventory (counterID == 0).
func (s *ReportService) GetStockReportData(ctx context.Context, counterID int) (*StockReportData, error) {
	var counters []*models.Counter
	if counterID > 0 {
		counter, err := s.counters.Get(ctx, counterID)
		if err != nil {
			return nil, err
		}
		counters = []*models.Counter{counter}
	} else {
		all, err := s.counters.List(ctx)
		if err != nil {
			return nil, err
		}
		counters = all
	}

	data := &StockReportData{
		Counters:   counters,
		Containers: make(map[int][]*models.Container),
	}
	for _, counter := range counters {
		list, err := s.containers.ListByCounter(ctx, counter.ID)
		if err != nil {
			return nil, err
		}
		data.Containers[counter.ID] = list
		for _, c := range list {
			data.NetWeight += c.NetWeight
			data.Variable += c.VariableWeight
			data.TotalAll += c.TotalAll
			data.TotalPieces += c.TotalPieces
		}
	}
	return data, nil
}

// GenerateStockPDF renders the stock report as a PDF document.
func (s *ReportService) GenerateStockPDF(ctx context.Context, counterID int) ([]byte, error) {
	data, err := s.GetStockReportData(ctx, counterID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(190, 12, "Jewelry Inventory - Stock Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Grand totals box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Totals", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(47, 8, fmt.Sprintf("Pieces: %d", data.TotalPieces), "1", 0, "C", false, 0, "")
	pdf.CellFormat(47, 8, fmt.Sprintf("Net: %.3f g", data.NetWeight), "1", 0, "C", false, 0, "")
	pdf.CellFormat(47, 8, fmt.Sprintf("Variable: %.3f g", data.Variable), "1", 0, "C", false, 0, "")
	pdf.CellFormat(49, 8, fmt.Sprintf("Total: %.3f g", data.TotalAll), "1", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, counter := range data.Counters {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(220, 220, 220)
		pdf.CellFormat(190, 8, fmt.Sprintf("Counter: %s", counter.Name), "1", 1, "L", true, 0, "")

		// Table header
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(15, 7, "Type", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Identity", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 7, "Fixed", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 7, "Net", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 7, "Variable", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Total", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Pieces", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 9)
		for i, c := range data.Containers[counter.ID] {
			if i%2 == 0 {
				pdf.SetFillColor(255, 255, 255)
			} else {
				pdf.SetFillColor(245, 245, 245)
			}

			identity := c.Identity
			if len(identity) > 26 {
				identity = identity[:23] + "..."
			}

			pdf.CellFormat(15, 6, c.Type, "1", 0, "C", true, 0, "")
			pdf.CellFormat(40, 6, identity, "1", 0, "L", true, 0, "")
			pdf.CellFormat(25, 6, fmt.Sprintf("%.3f", c.FixedWeight), "1", 0, "R", true, 0, "")
			pdf.CellFormat(25, 6, fmt.Sprintf("%.3f", c.NetWeight), "1", 0, "R", true, 0, "")
			pdf.CellFormat(25, 6, fmt.Sprintf("%.3f", c.VariableWeight), "1", 0, "R", true, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.3f", c.TotalAll), "1", 0, "R", true, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d", c.TotalPieces), "1", 1, "C", true, 0, "")
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
