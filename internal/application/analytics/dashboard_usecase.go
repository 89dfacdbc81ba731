// Package analytics contiene los casos de uso de KPIs y la serie de ingresos
// del Dashboard de administración del hotel.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// Ventanas de tiempo admitidas por el dashboard, en días.
var validRanges = map[int]bool{7: true, 30: true, 90: true}

// SnapshotCache cache opcional de snapshots de KPIs con TTL acotado.
// Get devuelve "" (sin error) en caso de miss; los errores de cache nunca
// rompen la lectura, solo la degradan a consulta directa.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// DashboardUseCase calcula los KPIs del dashboard sobre una ventana de
// 7, 30 o 90 días, con tendencia frente a la ventana inmediatamente anterior.
//
// Fuente de datos: MetricsRepository (consultas read-only, snapshots sin
// bloqueo). El reloj se inyecta para que los tests sean deterministas.
type DashboardUseCase struct {
	metrics repository.MetricsRepository
	cache   SnapshotCache // nil = sin cache
	ttl     time.Duration
	nowFn   func() time.Time
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(metrics repository.MetricsRepository, cache SnapshotCache, ttl time.Duration) *DashboardUseCase {
	return &DashboardUseCase{
		metrics: metrics,
		cache:   cache,
		ttl:     ttl,
		nowFn:   time.Now,
	}
}

// WithClock sustituye la fuente de tiempo (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.nowFn = now
	return uc
}

// GetKpis construye el KpiDTO para la ventana pedida.
//
// Consultas en paralelo:
//  1. RevenueInRange(ventana actual) y RevenueInRange(ventana anterior)
//  2. CountByCheckInDate(hoy) y CountByCheckInDate(ayer)
//  3. CountDistinctOccupied en ambas ventanas (tendencia de ocupación)
//  4. RoomCounts + CountActiveUsers
func (uc *DashboardUseCase) GetKpis(ctx context.Context, rangeDays int) (*dto.KpiDTO, error) {
	if !validRanges[rangeDays] {
		return nil, domain.Validationf("rangeDays", "valor %d no admitido (7, 30 o 90)", rangeDays)
	}

	if cached := uc.fromCache(ctx, rangeDays); cached != nil {
		return cached, nil
	}

	now := uc.nowFn()
	window := time.Duration(rangeDays) * 24 * time.Hour

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	end := now
	start := now.Add(-window)
	prevEnd := start
	prevStart := start.Add(-window)

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := todayStart.Add(-24 * time.Hour)

	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	type revenueResult struct {
		cur, prev decimal.Decimal
		err       error
	}
	type countResult struct {
		cur, prev int
		err       error
	}
	type inventoryResult struct {
		rooms       repository.RoomStatusCounts
		activeUsers int
		err         error
	}

	revenueCh := make(chan revenueResult, 1)
	todayCh := make(chan countResult, 1)
	occupiedCh := make(chan countResult, 1)
	inventoryCh := make(chan inventoryResult, 1)

	go func() {
		cur, err := uc.metrics.RevenueInRange(ctx, start, end)
		if err != nil {
			revenueCh <- revenueResult{err: err}
			return
		}
		prev, err := uc.metrics.RevenueInRange(ctx, prevStart, prevEnd)
		revenueCh <- revenueResult{cur: cur, prev: prev, err: err}
	}()
	go func() {
		cur, err := uc.metrics.CountByCheckInDate(ctx, todayStart)
		if err != nil {
			todayCh <- countResult{err: err}
			return
		}
		prev, err := uc.metrics.CountByCheckInDate(ctx, yesterday)
		todayCh <- countResult{cur: cur, prev: prev, err: err}
	}()
	go func() {
		cur, err := uc.metrics.CountDistinctOccupied(ctx, start, end)
		if err != nil {
			occupiedCh <- countResult{err: err}
			return
		}
		prev, err := uc.metrics.CountDistinctOccupied(ctx, prevStart, prevEnd)
		occupiedCh <- countResult{cur: cur, prev: prev, err: err}
	}()
	go func() {
		rooms, err := uc.metrics.RoomCounts(ctx)
		if err != nil {
			inventoryCh <- inventoryResult{err: err}
			return
		}
		users, err := uc.metrics.CountActiveUsers(ctx)
		inventoryCh <- inventoryResult{rooms: rooms, activeUsers: users, err: err}
	}()

	revenue := <-revenueCh
	today := <-todayCh
	occupied := <-occupiedCh
	inventory := <-inventoryCh

	if revenue.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos: %w", revenue.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: reservas de hoy: %w", today.err)
	}
	if occupied.err != nil {
		return nil, fmt.Errorf("dashboard: ocupación: %w", occupied.err)
	}
	if inventory.err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", inventory.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	revCur, _ := revenue.cur.Float64()
	revPrev, _ := revenue.prev.Float64()

	out := &dto.KpiDTO{
		RangeDays:          rangeDays,
		TotalRevenue:       revenue.cur.Round(2),
		RevenueTrend:       computeTrend(revCur, revPrev),
		TodaysReservations: today.cur,
		ReservationsTrend:  computeTrend(float64(today.cur), float64(today.prev)),
		OccupancyRate:      occupancyRate(inventory.rooms.Occupied, inventory.rooms.Total),
		OccupancyTrend:     computeTrend(float64(occupied.cur), float64(occupied.prev)),
		ActiveUsers:        inventory.activeUsers,
		ActiveUsersTrend:   dto.TrendDTO{Value: 0, IsPositive: true},
		DateLabel:          rangeLabel(rangeDays),
	}

	uc.toCache(ctx, rangeDays, out)
	return out, nil
}

// GetRevenueSeries devuelve la serie mensual de ingresos para el gráfico.
func (uc *DashboardUseCase) GetRevenueSeries(ctx context.Context, rangeDays int) (*dto.RevenueSeriesDTO, error) {
	if !validRanges[rangeDays] {
		return nil, domain.Validationf("rangeDays", "valor %d no admitido (7, 30 o 90)", rangeDays)
	}
	now := uc.nowFn()
	start := now.Add(-time.Duration(rangeDays) * 24 * time.Hour)

	points, err := uc.metrics.RevenueSeries(ctx, start, now)
	if err != nil {
		return nil, fmt.Errorf("dashboard: serie de ingresos: %w", err)
	}

	out := &dto.RevenueSeriesDTO{RangeDays: rangeDays, Points: make([]dto.RevenuePointDTO, 0, len(points))}
	for _, p := range points {
		out.Points = append(out.Points, dto.RevenuePointDTO{
			Month:        p.Month.Format("2006-01"),
			Revenue:      p.Revenue.Round(2),
			Reservations: p.Reservations,
		})
	}
	return out, nil
}

// occupancyRate = ocupadas / total × 100 redondeado a entero; 0 si total = 0.
func occupancyRate(occupied, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(occupied) / float64(total) * 100))
}

// computeTrend compara la ventana actual contra la anterior.
// IsPositive = actual ≥ anterior. Value es el cambio porcentual en valor
// absoluto con 1 decimal; con anterior cero vale 100 si hubo crecimiento.
func computeTrend(cur, prev float64) dto.TrendDTO {
	positive := cur >= prev
	if prev == 0 {
		if cur == 0 {
			return dto.TrendDTO{Value: 0, IsPositive: true}
		}
		return dto.TrendDTO{Value: 100, IsPositive: positive}
	}
	change := math.Abs((cur - prev) / prev * 100)
	return dto.TrendDTO{Value: math.Round(change*10) / 10, IsPositive: positive}
}

// rangeLabel etiqueta legible de la ventana, ej: "Últimos 30 días".
func rangeLabel(rangeDays int) string {
	return fmt.Sprintf("Últimos %d días", rangeDays)
}

func cacheKey(rangeDays int) string {
	return fmt.Sprintf("dashboard:kpis:%d", rangeDays)
}

// fromCache devuelve el snapshot cacheado o nil. Un error de cache se trata
// como miss: la staleness es acotada pero la disponibilidad manda.
func (uc *DashboardUseCase) fromCache(ctx context.Context, rangeDays int) *dto.KpiDTO {
	if uc.cache == nil {
		return nil
	}
	raw, err := uc.cache.Get(ctx, cacheKey(rangeDays))
	if err != nil || raw == "" {
		return nil
	}
	var out dto.KpiDTO
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return &out
}

func (uc *DashboardUseCase) toCache(ctx context.Context, rangeDays int, snapshot *dto.KpiDTO) {
	if uc.cache == nil {
		return
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	_ = uc.cache.Set(ctx, cacheKey(rangeDays), string(raw), uc.ttl)
}
