// Package booking contiene la lógica de dominio pura de tarificación de reservas.
package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Nights devuelve el número de noches entre checkIn y checkOut, contando
// días calendario (las horas se descartan). checkOut ≤ checkIn devuelve 0.
func Nights(checkIn, checkOut time.Time) int64 {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	n := int64(out.Sub(in).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// TotalPrice implementa la regla de precios del hotel (servicio de dominio):
// PrecioTotal = TarifaNoche × Noches. Es la única fuente del total de una
// reserva; los totales enviados por el cliente se ignoran.
func TotalPrice(nightlyRate decimal.Decimal, checkIn, checkOut time.Time) decimal.Decimal {
	return nightlyRate.Mul(decimal.NewFromInt(Nights(checkIn, checkOut))).Round(2)
}
