package repository

import (
	"context"

	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
)

// RoomFilter criterios de búsqueda para listados de habitaciones.
type RoomFilter struct {
	Status string // vacío o "all" = sin filtro
	Type   string
	Search string // substring sobre room_number y description, case-insensitive
}

// RoomRepository puerto de persistencia para habitaciones.
// Update aplica el mismo compare-and-swap sobre Revision que las reservas.
type RoomRepository interface {
	Create(ctx context.Context, r *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	GetByNumber(ctx context.Context, roomNumber string) (*entity.Room, error)
	// List devuelve las habitaciones ordenadas por room_number ascendente.
	List(ctx context.Context, f RoomFilter) ([]*entity.Room, error)
	Update(ctx context.Context, r *entity.Room) error
}
