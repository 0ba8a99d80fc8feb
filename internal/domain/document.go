package domain

import (
	"time"
)

const (
	CollectionPatients     = "patients"
	CollectionAppointments = "appointments"
)

type Document struct {
	ID         string         `json:"id"`
	Collection string         `json:"collection"`
	Data       map[string]any `json:"data"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// DocumentFilter selects documents whose data contains every Equal pair.
type DocumentFilter struct {
	Equal     map[string]any
	OrderDesc bool
	Limit     int
	Offset    int
}

type DocumentList struct {
	Total     int        `json:"total"`
	Documents []Document `json:"documents"`
}
