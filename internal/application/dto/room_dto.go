package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomQuery parámetros de GET /api/rooms.
type RoomQuery struct {
	Status string `query:"status"` // vacío o "all" = sin filtro
	Type   string `query:"type"`
	Search string `query:"search"`
}

// CreateRoomRequest alta de habitación.
type CreateRoomRequest struct {
	RoomNumber   string          `json:"room_number"`
	Type         string          `json:"type"`
	MaxOccupancy int             `json:"max_occupancy"`
	Rate         decimal.Decimal `json:"rate"`
	Amenities    []string        `json:"amenities"`
	Description  string          `json:"description"`
}

// RoomStatusRequest cuerpo de PUT /api/rooms/:id/status (solo administrativo:
// available, maintenance o disabled; occupied lo mueve el check-in).
type RoomStatusRequest struct {
	Status string `json:"status"`
}

// RoomResponse representación externa de una habitación.
type RoomResponse struct {
	ID           string          `json:"id"`
	RoomNumber   string          `json:"room_number"`
	Type         string          `json:"type"`
	MaxOccupancy int             `json:"max_occupancy"`
	Rate         decimal.Decimal `json:"rate"`
	Status       string          `json:"status"`
	Amenities    []string        `json:"amenities"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// RoomSummaryDTO respuesta de GET /api/rooms/summary.
// AverageRate es la media de tarifa sobre habitaciones no deshabilitadas.
type RoomSummaryDTO struct {
	Total       int             `json:"total"`
	Available   int             `json:"available"`
	Occupied    int             `json:"occupied"`
	Maintenance int             `json:"maintenance"`
	AverageRate decimal.Decimal `json:"average_rate"`
}
