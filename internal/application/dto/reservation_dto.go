package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationQuery parámetros de GET /api/reservations.
type ReservationQuery struct {
	GuestName     string `query:"guestName"`
	Status        string `query:"status"`        // vacío o "all" = sin filtro
	PaymentStatus string `query:"paymentStatus"` // vacío o "all" = sin filtro
	DateStart     string `query:"dateStart"`     // YYYY-MM-DD, opcional
	DateEnd       string `query:"dateEnd"`       // YYYY-MM-DD, opcional
	PageRequest
}

// CreateReservationRequest alta de reserva. El precio total lo calcula el
// servidor (tarifa × noches); no se acepta del cliente.
type CreateReservationRequest struct {
	GuestName     string `json:"guest_name"`
	RoomNumber    string `json:"room_number"`
	CheckIn       string `json:"check_in"`  // YYYY-MM-DD
	CheckOut      string `json:"check_out"` // YYYY-MM-DD
	PaymentStatus string `json:"payment_status"` // opcional, default unpaid
}

// TransitionRequest cuerpo de POST /api/reservations/:id/transition.
type TransitionRequest struct {
	To string `json:"to"`
}

// PaymentStatusRequest cuerpo de PUT /api/reservations/:id/payment-status.
type PaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

// ReservationResponse representación externa de una reserva.
type ReservationResponse struct {
	ID            string          `json:"id"`
	GuestName     string          `json:"guest_name"`
	RoomNumber    string          `json:"room_number"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	CheckIn       string          `json:"check_in"`
	CheckOut      string          `json:"check_out"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ReservationListResponse página de reservas más el total de coincidencias.
type ReservationListResponse struct {
	Items []ReservationResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
