package models

// DashboardSummary is the read-only rollup across the whole inventory. All
// figures are recomputed from stored state on request; nothing here is a
// second source of truth for container aggregates.
type DashboardSummary struct {
	Counters        int     `json:"counters"`
	Boxes           int     `json:"boxes"`
	Trays           int     `json:"trays"`
	Pieces          int     `json:"pieces"`
	AvailablePieces int     `json:"available"`
	SoldPieces      int     `json:"sold"`
	NetWeight       float64 `json:"netWeight"`
	VariableWeight  float64 `json:"variableWeight"`
	TotalAll        float64 `json:"totalAll"`
}
