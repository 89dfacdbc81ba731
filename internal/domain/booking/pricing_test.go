package booking_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Hoteleria-api/internal/domain/booking"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights_DiasCalendario(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int64
	}{
		{"una noche", date(2026, 3, 10), date(2026, 3, 11), 1},
		{"tres noches", date(2026, 3, 10), date(2026, 3, 13), 3},
		{"mismo día", date(2026, 3, 10), date(2026, 3, 10), 0},
		{"check_out anterior", date(2026, 3, 13), date(2026, 3, 10), 0},
		{"cruza fin de mes", date(2026, 1, 30), date(2026, 2, 2), 3},
		{"cruza año", date(2025, 12, 30), date(2026, 1, 2), 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, booking.Nights(tc.checkIn, tc.checkOut))
		})
	}
}

// Las horas del día no cuentan: sólo importan los días calendario.
func TestNights_IgnoraHoras(t *testing.T) {
	checkIn := time.Date(2026, 3, 10, 23, 50, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 11, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, int64(1), booking.Nights(checkIn, checkOut))
}

func TestTotalPrice_TarifaPorNoches(t *testing.T) {
	rate := decimal.NewFromFloat(185.50)
	total := booking.TotalPrice(rate, date(2026, 3, 10), date(2026, 3, 13))
	assert.True(t, decimal.NewFromFloat(556.50).Equal(total), "esperaba 556.50, obtuve %s", total)
}

func TestTotalPrice_CeroNoches(t *testing.T) {
	rate := decimal.NewFromInt(200)
	total := booking.TotalPrice(rate, date(2026, 3, 10), date(2026, 3, 10))
	assert.True(t, total.IsZero())
}

func TestTotalPrice_RedondeaADosDecimales(t *testing.T) {
	rate := decimal.NewFromFloat(99.999)
	total := booking.TotalPrice(rate, date(2026, 3, 10), date(2026, 3, 12))
	assert.True(t, decimal.NewFromFloat(200.00).Equal(total), "esperaba 200.00, obtuve %s", total)
}
