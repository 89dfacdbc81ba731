package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una reserva.
const (
	ReservationPending    = "pending"
	ReservationConfirmed  = "confirmed"
	ReservationCheckedIn  = "checked_in"
	ReservationCheckedOut = "checked_out"
	ReservationCancelled  = "cancelled"
)

// Estados de pago de una reserva.
const (
	PaymentPaid    = "paid"
	PaymentPartial = "partial"
	PaymentUnpaid  = "unpaid"
)

// Reservation representa una reserva de habitación.
// TotalPrice se calcula en el servidor (tarifa × noches); el valor del cliente se ignora.
type Reservation struct {
	ID            string
	GuestName     string
	RoomID        string
	RoomNumber    string
	Status        string
	PaymentStatus string
	CheckIn       time.Time
	CheckOut      time.Time
	TotalPrice    decimal.Decimal
	Revision      int64 // contador de versión para concurrencia optimista
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// reservationTransitions define la máquina de estados de la reserva:
// pending → confirmed → checked_in → checked_out (terminal);
// cancelled es alcanzable desde cualquier estado previo a checked_out (terminal).
var reservationTransitions = map[string][]string{
	ReservationPending:    {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed:  {ReservationCheckedIn, ReservationCancelled},
	ReservationCheckedIn:  {ReservationCheckedOut, ReservationCancelled},
	ReservationCheckedOut: {},
	ReservationCancelled:  {},
}

// ValidReservationStatus indica si s es un estado de reserva conocido.
func ValidReservationStatus(s string) bool {
	_, ok := reservationTransitions[s]
	return ok
}

// ValidPaymentStatus indica si s es un estado de pago conocido.
func ValidPaymentStatus(s string) bool {
	return s == PaymentPaid || s == PaymentPartial || s == PaymentUnpaid
}

// CanTransitionTo indica si la reserva puede pasar a `to` según la máquina de estados.
func (r *Reservation) CanTransitionTo(to string) bool {
	for _, next := range reservationTransitions[r.Status] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal indica si la reserva ya no admite cambios (checked_out o cancelled).
func (r *Reservation) Terminal() bool {
	return r.Status == ReservationCheckedOut || r.Status == ReservationCancelled
}

// Active indica si la reserva cuenta como ocupación vigente (confirmed o checked_in).
func (r *Reservation) Active() bool {
	return r.Status == ReservationConfirmed || r.Status == ReservationCheckedIn
}

// Overlaps indica si la estadía [CheckIn, CheckOut] se solapa con [start, end]:
// check_in ≤ end Y check_out ≥ start.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return !r.CheckIn.After(end) && !r.CheckOut.Before(start)
}
