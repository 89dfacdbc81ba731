package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var _ repository.MetricsRepository = (*MetricsRepo)(nil)

// MetricsRepo implementa las consultas de lectura de los KPIs del dashboard
// sobre PostgreSQL. Todas las agregaciones usan COALESCE para devolver cero
// cuando el período no tiene datos, igual que el contrato del puerto.
type MetricsRepo struct {
	q Querier
}

// NewMetricsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMetricsRepository(q Querier) *MetricsRepo {
	return &MetricsRepo{q: q}
}

// RevenueInRange suma total_price de las reservas no canceladas creadas en [start, end].
func (r *MetricsRepo) RevenueInRange(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(total_price), 0)
		FROM reservations
		WHERE status <> 'cancelled' AND created_at BETWEEN $1 AND $2`
	var total decimal.Decimal
	err := withRetry(ctx, func() error {
		return r.q.QueryRow(ctx, query, start, end).Scan(&total)
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("revenue in range: %w", err)
	}
	return total, nil
}

// CountByCheckInDate cuenta reservas con check_in en el día calendario de day.
func (r *MetricsRepo) CountByCheckInDate(ctx context.Context, day time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM reservations WHERE check_in::date = $1::date`
	var count int
	err := withRetry(ctx, func() error {
		return r.q.QueryRow(ctx, query, day).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("count by check-in date: %w", err)
	}
	return count, nil
}

// CountDistinctOccupied cuenta habitaciones distintas con reserva activa que
// se solape con [start, end].
func (r *MetricsRepo) CountDistinctOccupied(ctx context.Context, start, end time.Time) (int, error) {
	const query = `
		SELECT COUNT(DISTINCT room_id)
		FROM reservations
		WHERE status IN ('confirmed', 'checked_in')
		  AND check_in <= $2 AND check_out >= $1`
	var count int
	err := withRetry(ctx, func() error {
		return r.q.QueryRow(ctx, query, start, end).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("count distinct occupied: %w", err)
	}
	return count, nil
}

// RoomCounts devuelve el conteo de habitaciones por estado en una sola pasada.
func (r *MetricsRepo) RoomCounts(ctx context.Context) (repository.RoomStatusCounts, error) {
	const query = `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'available'),
			COUNT(*) FILTER (WHERE status = 'occupied'),
			COUNT(*) FILTER (WHERE status = 'maintenance'),
			COUNT(*) FILTER (WHERE status = 'disabled')
		FROM rooms`
	var c repository.RoomStatusCounts
	err := withRetry(ctx, func() error {
		return r.q.QueryRow(ctx, query).Scan(&c.Total, &c.Available, &c.Occupied, &c.Maintenance, &c.Disabled)
	})
	if err != nil {
		return repository.RoomStatusCounts{}, fmt.Errorf("room counts: %w", err)
	}
	return c, nil
}

// AverageRate devuelve la tarifa media de las habitaciones no deshabilitadas.
func (r *MetricsRepo) AverageRate(ctx context.Context) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(ROUND(AVG(rate), 2), 0)
		FROM rooms WHERE status <> 'disabled'`
	var avg decimal.Decimal
	err := withRetry(ctx, func() error {
		return r.q.QueryRow(ctx, query).Scan(&avg)
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("average rate: %w", err)
	}
	return avg, nil
}

// CountActiveUsers cuenta el personal activo.
func (r *MetricsRepo) CountActiveUsers(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM users WHERE is_active = true`
	var count int
	err := withRetry(ctx, func() error {
		return r.q.QueryRow(ctx, query).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("count active users: %w", err)
	}
	return count, nil
}

// RevenueSeries devuelve los ingresos por mes calendario dentro de [start, end].
// generate_series rellena con cero los meses intermedios sin reservas.
func (r *MetricsRepo) RevenueSeries(ctx context.Context, start, end time.Time) ([]repository.RevenuePoint, error) {
	const query = `
		SELECT m.month,
			COALESCE(SUM(res.total_price), 0),
			COUNT(res.id)
		FROM generate_series(date_trunc('month', $1::timestamptz),
			date_trunc('month', $2::timestamptz), interval '1 month') AS m(month)
		LEFT JOIN reservations res
			ON date_trunc('month', res.created_at) = m.month
			AND res.status <> 'cancelled'
			AND res.created_at BETWEEN $1 AND $2
		GROUP BY m.month
		ORDER BY m.month ASC`

	var series []repository.RevenuePoint
	err := withRetry(ctx, func() error {
		rows, err := r.q.Query(ctx, query, start, end)
		if err != nil {
			return fmt.Errorf("revenue series: %w", err)
		}
		defer rows.Close()
		series = series[:0]
		for rows.Next() {
			var p repository.RevenuePoint
			if err := rows.Scan(&p.Month, &p.Revenue, &p.Reservations); err != nil {
				return fmt.Errorf("scan revenue point: %w", err)
			}
			series = append(series, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	if series == nil {
		series = []repository.RevenuePoint{}
	}
	return series, nil
}
