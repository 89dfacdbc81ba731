package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
)

func TestCanTransitionTo_MaquinaDeEstados(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{entity.ReservationPending, entity.ReservationConfirmed, true},
		{entity.ReservationPending, entity.ReservationCancelled, true},
		{entity.ReservationPending, entity.ReservationCheckedIn, false},
		{entity.ReservationPending, entity.ReservationCheckedOut, false},
		{entity.ReservationConfirmed, entity.ReservationCheckedIn, true},
		{entity.ReservationConfirmed, entity.ReservationCancelled, true},
		{entity.ReservationConfirmed, entity.ReservationCheckedOut, false},
		{entity.ReservationConfirmed, entity.ReservationPending, false},
		{entity.ReservationCheckedIn, entity.ReservationCheckedOut, true},
		{entity.ReservationCheckedIn, entity.ReservationCancelled, true},
		{entity.ReservationCheckedIn, entity.ReservationConfirmed, false},
		{entity.ReservationCheckedOut, entity.ReservationConfirmed, false},
		{entity.ReservationCheckedOut, entity.ReservationCancelled, false},
		{entity.ReservationCancelled, entity.ReservationPending, false},
		{entity.ReservationCancelled, entity.ReservationConfirmed, false},
	}
	for _, tc := range cases {
		r := &entity.Reservation{Status: tc.from}
		assert.Equal(t, tc.allowed, r.CanTransitionTo(tc.to),
			"%s → %s: esperaba allowed=%v", tc.from, tc.to, tc.allowed)
	}
}

func TestTerminal_SoloCheckedOutYCancelled(t *testing.T) {
	terminal := map[string]bool{
		entity.ReservationPending:    false,
		entity.ReservationConfirmed:  false,
		entity.ReservationCheckedIn:  false,
		entity.ReservationCheckedOut: true,
		entity.ReservationCancelled:  true,
	}
	for status, want := range terminal {
		r := &entity.Reservation{Status: status}
		assert.Equal(t, want, r.Terminal(), "estado %s", status)
	}
}

func TestActive_ConfirmedYCheckedIn(t *testing.T) {
	active := map[string]bool{
		entity.ReservationPending:    false,
		entity.ReservationConfirmed:  true,
		entity.ReservationCheckedIn:  true,
		entity.ReservationCheckedOut: false,
		entity.ReservationCancelled:  false,
	}
	for status, want := range active {
		r := &entity.Reservation{Status: status}
		assert.Equal(t, want, r.Active(), "estado %s", status)
	}
}

func TestOverlaps_RangoCerrado(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }
	r := &entity.Reservation{CheckIn: day(10), CheckOut: day(15)}

	assert.True(t, r.Overlaps(day(12), day(13)), "rango dentro de la estadía")
	assert.True(t, r.Overlaps(day(1), day(10)), "solo toca el check_in")
	assert.True(t, r.Overlaps(day(15), day(20)), "solo toca el check_out")
	assert.True(t, r.Overlaps(day(1), day(31)), "rango que contiene la estadía")
	assert.False(t, r.Overlaps(day(1), day(9)), "termina antes del check_in")
	assert.False(t, r.Overlaps(day(16), day(20)), "empieza después del check_out")
}

func TestValidReservationStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "checked_in", "checked_out", "cancelled"} {
		assert.True(t, entity.ValidReservationStatus(s), s)
	}
	assert.False(t, entity.ValidReservationStatus("archived"))
	assert.False(t, entity.ValidReservationStatus(""))
}

func TestValidPaymentStatus(t *testing.T) {
	for _, s := range []string{"paid", "partial", "unpaid"} {
		assert.True(t, entity.ValidPaymentStatus(s), s)
	}
	assert.False(t, entity.ValidPaymentStatus("refunded"))
}

func TestRoomBookable(t *testing.T) {
	bookable := map[string]bool{
		entity.RoomAvailable:   true,
		entity.RoomOccupied:    true,
		entity.RoomMaintenance: false,
		entity.RoomDisabled:    false,
	}
	for status, want := range bookable {
		r := &entity.Room{Status: status}
		assert.Equal(t, want, r.Bookable(), "estado %s", status)
	}
}
