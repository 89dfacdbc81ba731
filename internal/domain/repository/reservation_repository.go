package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
)

// ReservationFilter criterios de búsqueda para listados de reservas.
// Los campos vacíos (o "all" en los enums) no filtran.
type ReservationFilter struct {
	GuestName     string // substring, case-insensitive
	Status        string
	PaymentStatus string
	// Rango de fechas: la reserva entra si se solapa con [DateStart, DateEnd]
	// (check_in ≤ DateEnd Y check_out ≥ DateStart).
	DateStart *time.Time
	DateEnd   *time.Time
}

// ReservationRepository puerto de persistencia para reservas.
//
// Update aplica compare-and-swap sobre Revision: si la revisión persistida no
// coincide con la del agregado en memoria devuelve domain.ErrConflict y no
// escribe nada. Las implementaciones incrementan Revision en cada escritura.
type ReservationRepository interface {
	Create(ctx context.Context, r *entity.Reservation) error
	GetByID(ctx context.Context, id string) (*entity.Reservation, error)
	// List devuelve la página pedida ordenada por created_at descendente,
	// desempatando por id ascendente para que la paginación sea determinista.
	List(ctx context.Context, f ReservationFilter, limit, offset int) ([]*entity.Reservation, error)
	Count(ctx context.Context, f ReservationFilter) (int, error)
	Update(ctx context.Context, r *entity.Reservation) error
	// FindActiveByRoom devuelve la reserva activa (confirmed o checked_in)
	// de la habitación, o nil si no hay ninguna.
	FindActiveByRoom(ctx context.Context, roomID string) (*entity.Reservation, error)
}
