package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una habitación. available↔occupied los mueve el check-in/check-out;
// maintenance y disabled se fijan administrativamente y excluyen la habitación de reservas.
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
	RoomDisabled    = "disabled"
)

// Tipos de habitación del hotel.
const (
	RoomTypeStandard = "Standard"
	RoomTypeDeluxe   = "Deluxe"
	RoomTypeSuite    = "Suite"
	RoomTypeFamily   = "Family"
)

// Room representa una habitación del hotel.
type Room struct {
	ID           string
	RoomNumber   string // único
	Type         string
	MaxOccupancy int
	Rate         decimal.Decimal // tarifa por noche
	Status       string
	Amenities    []string
	Description  string
	Revision     int64 // contador de versión para concurrencia optimista
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRoomStatus indica si s es un estado de habitación conocido.
func ValidRoomStatus(s string) bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomDisabled:
		return true
	}
	return false
}

// ValidRoomType indica si t es un tipo de habitación conocido.
func ValidRoomType(t string) bool {
	switch t {
	case RoomTypeStandard, RoomTypeDeluxe, RoomTypeSuite, RoomTypeFamily:
		return true
	}
	return false
}

// Bookable indica si la habitación admite nuevas reservas.
func (r *Room) Bookable() bool {
	return r.Status == RoomAvailable || r.Status == RoomOccupied
}
