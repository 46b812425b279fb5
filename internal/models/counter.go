package models

import "time"

// Counter is a top-level grouping of containers (a physical shop counter).
type Counter struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateCounterRequest represents the request body for creating a counter
type CreateCounterRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateCounterRequest represents the request body for updating a counter
type UpdateCounterRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
