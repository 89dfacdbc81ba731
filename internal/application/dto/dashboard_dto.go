package dto

import "github.com/shopspring/decimal"

// TrendDTO variación de un KPI frente a la ventana inmediatamente anterior
// de igual longitud. IsPositive = actual ≥ anterior.
type TrendDTO struct {
	Value      float64 `json:"value"` // magnitud del cambio, en %, 1 decimal
	IsPositive bool    `json:"is_positive"`
}

// KpiDTO respuesta de GET /api/dashboard/kpis.
// Snapshot derivado, no almacenado: se calcula bajo demanda sobre
// reservas/habitaciones/personal para la ventana pedida.
type KpiDTO struct {
	RangeDays int `json:"range_days"` // 7, 30 o 90

	// Ingresos de reservas no canceladas creadas dentro de la ventana.
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	RevenueTrend TrendDTO        `json:"revenue_trend"`

	// Reservas cuyo check_in es hoy; la tendencia compara contra ayer.
	TodaysReservations int      `json:"todays_reservations"`
	ReservationsTrend  TrendDTO `json:"reservations_trend"`

	// habitaciones ocupadas / total × 100, redondeado a entero. 0 si no hay habitaciones.
	OccupancyRate  int      `json:"occupancy_rate"`
	OccupancyTrend TrendDTO `json:"occupancy_trend"`

	// Personal con is_active = true. Sin histórico de activación, la
	// tendencia es plana.
	ActiveUsers      int      `json:"active_users"`
	ActiveUsersTrend TrendDTO `json:"active_users_trend"`

	DateLabel string `json:"date_label"` // ej: "Últimos 30 días"
}

// RevenuePointDTO un mes de la serie de ingresos del gráfico del dashboard.
type RevenuePointDTO struct {
	Month        string          `json:"month"` // YYYY-MM
	Revenue      decimal.Decimal `json:"revenue"`
	Reservations int             `json:"reservations"`
}

// RevenueSeriesDTO respuesta de GET /api/dashboard/revenue-series.
type RevenueSeriesDTO struct {
	RangeDays int               `json:"range_days"`
	Points    []RevenuePointDTO `json:"points"`
}
