package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RoomStatusCounts conteo de habitaciones por estado. Lo produce la DB;
// el caso de uso lo convierte en DTO.
type RoomStatusCounts struct {
	Total       int
	Available   int
	Occupied    int
	Maintenance int
	Disabled    int
}

// RevenuePoint ingresos agregados de un mes calendario.
type RevenuePoint struct {
	Month        time.Time // primer día del mes, 00:00
	Revenue      decimal.Decimal
	Reservations int
}

// MetricsRepository define las consultas de lectura para los KPIs del
// dashboard y los reportes. Las implementaciones son read-only y devuelven
// cero (no error) cuando el período no tiene datos.
type MetricsRepository interface {
	// RevenueInRange suma total_price de las reservas con created_at dentro
	// de [start, end] y estado distinto de cancelled.
	RevenueInRange(ctx context.Context, start, end time.Time) (decimal.Decimal, error)

	// CountByCheckInDate cuenta reservas cuya fecha de check_in cae en el
	// día calendario de `day`.
	CountByCheckInDate(ctx context.Context, day time.Time) (int, error)

	// CountDistinctOccupied cuenta habitaciones distintas con alguna reserva
	// activa (confirmed o checked_in) que se solape con [start, end].
	CountDistinctOccupied(ctx context.Context, start, end time.Time) (int, error)

	// RoomCounts devuelve el conteo de habitaciones por estado.
	RoomCounts(ctx context.Context) (RoomStatusCounts, error)

	// AverageRate devuelve la tarifa media de las habitaciones no
	// deshabilitadas; cero si no hay ninguna.
	AverageRate(ctx context.Context) (decimal.Decimal, error)

	// CountActiveUsers cuenta el personal con is_active = true.
	CountActiveUsers(ctx context.Context) (int, error)

	// RevenueSeries devuelve los ingresos por mes calendario dentro de
	// [start, end], ordenados cronológicamente, sin huecos intermedios.
	RevenueSeries(ctx context.Context, start, end time.Time) ([]RevenuePoint, error)
}
