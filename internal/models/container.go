package models

import "time"

// Container types. Boxes and trays share identical aggregate math and differ
// only in display label, so the type is a plain tag rather than two structs.
const (
	ContainerTypeBox  = "BOX"
	ContainerTypeTray = "TRAY"
)

// Container is a box or tray that holds pieces. The weight columns other than
// FixedWeight are derived: they are recomputed from the container's current
// piece set after every piece mutation and must never be written directly by
// callers.
type Container struct {
	ID             int       `json:"id"`
	CounterID      int       `json:"counterId"`
	Type           string    `json:"type"` // BOX or TRAY
	Identity       string    `json:"identity"`
	Date           string    `json:"date"`
	FixedWeight    float64   `json:"fixedWeight"`    // tare weight of the empty container
	NetWeight      float64   `json:"netWeight"`      // sum of AVAILABLE piece weights
	VariableWeight float64   `json:"variableWeight"` // sum of AVAILABLE piece vweights
	GrossWeight    float64   `json:"grossWeight"`    // fixedWeight + netWeight
	TotalAll       float64   `json:"totalAll"`       // grossWeight + variableWeight
	TotalPieces    int       `json:"totalPieces"`    // all attached pieces, SOLD included
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ApplyAggregates rederives the container's weight and count fields from the
// given piece set. Only AVAILABLE pieces contribute to the weight sums; SOLD
// pieces stay in TotalPieces so the audit trail keeps them visible.
func (c *Container) ApplyAggregates(pieces []*Piece) {
	var net, variable float64
	count := 0
	for _, p := range pieces {
		if p.BoxID != c.ID {
			continue
		}
		count++
		if p.Status == PieceStatusAvailable {
			net += p.Weight
			variable += p.VWeight
		}
	}
	c.NetWeight = net
	c.VariableWeight = variable
	c.GrossWeight = c.FixedWeight + net
	c.TotalAll = c.GrossWeight + variable
	c.TotalPieces = count
}

// ValidContainerType reports whether t is one of the known container types.
func ValidContainerType(t string) bool {
	return t == ContainerTypeBox || t == ContainerTypeTray
}

// CreateContainerRequest represents the request body for creating a container
type CreateContainerRequest struct {
	CounterID   int     `json:"counterId"`
	Type        string  `json:"type"`
	Identity    string  `json:"identity"`
	Date        string  `json:"date"`
	FixedWeight float64 `json:"fixedWeight"`
}

// UpdateContainerRequest represents the request body for updating a container.
// CounterID is optional; a non-zero value reassigns the container (and all of
// its pieces) to another counter.
type UpdateContainerRequest struct {
	CounterID   int     `json:"counterId"`
	Type        string  `json:"type"`
	Identity    string  `json:"identity"`
	Date        string  `json:"date"`
	FixedWeight float64 `json:"fixedWeight"`
}
