package models

import "time"

// Piece sale status. SOLD is terminal; there is no un-sell operation.
const (
	PieceStatusAvailable = "AVAILABLE"
	PieceStatusSold      = "SOLD"
)

// Piece is the atomic inventory unit. CounterID is denormalized from the
// owning container for query convenience; the ledger keeps it in sync on
// transfer and container reassignment.
type Piece struct {
	ID        int       `json:"id"`
	CounterID int       `json:"counterId"`
	BoxID     int       `json:"boxId"`
	Barcode   string    `json:"barcode"`
	Type      string    `json:"type"`
	Weight    float64   `json:"weight"`
	VWeight   float64   `json:"vweight"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreatePieceRequest represents the request body for creating a piece.
// CounterID is accepted for compatibility with the UI but the ledger derives
// the authoritative value from the target container.
type CreatePieceRequest struct {
	CounterID int     `json:"counterId"`
	BoxID     int     `json:"boxId"`
	Barcode   string  `json:"barcode"`
	Type      string  `json:"type"`
	Weight    float64 `json:"weight"`
	VWeight   float64 `json:"vweight"`
	Date      string  `json:"date"`
}

// UpdatePieceRequest represents the request body for editing a piece in
// place. Location changes go through the transfer operation, never here.
type UpdatePieceRequest struct {
	Barcode string  `json:"barcode"`
	Type    string  `json:"type"`
	Weight  float64 `json:"weight"`
	VWeight float64 `json:"vweight"`
	Date    string  `json:"date"`
}
