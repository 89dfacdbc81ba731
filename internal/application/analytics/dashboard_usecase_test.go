package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hoteleria-api/internal/application/analytics"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/memory"
)

// Reloj fijo para que las ventanas del dashboard sean deterministas.
var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// fakeCache cache en memoria para verificar hits y writes.
type fakeCache struct {
	data map[string]string
	sets int
}

func newFakeCache() *fakeCache { return &fakeCache{data: make(map[string]string)} }

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	return c.data[key], nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.data[key] = value
	c.sets++
	return nil
}

func seedReservation(t *testing.T, store *memory.Store, guest string, createdDaysAgo int, price int64, status string, checkIn time.Time) {
	t.Helper()
	created := fixedNow.AddDate(0, 0, -createdDaysAgo)
	err := store.Reservations().Create(context.Background(), &entity.Reservation{
		ID:            guest,
		GuestName:     guest,
		RoomID:        "room-" + guest,
		RoomNumber:    "101",
		Status:        status,
		PaymentStatus: entity.PaymentUnpaid,
		CheckIn:       checkIn,
		CheckOut:      checkIn.AddDate(0, 0, 2),
		TotalPrice:    decimal.NewFromInt(price),
		CreatedAt:     created,
		UpdatedAt:     created,
	})
	require.NoError(t, err)
}

func seedRoom(t *testing.T, store *memory.Store, number, status string, rate int64) {
	t.Helper()
	err := store.Rooms().Create(context.Background(), &entity.Room{
		ID:         "room-" + number,
		RoomNumber: number,
		Type:       entity.RoomTypeStandard,
		Rate:       decimal.NewFromInt(rate),
		Status:     status,
		CreatedAt:  fixedNow,
		UpdatedAt:  fixedNow,
	})
	require.NoError(t, err)
}

func TestGetKpis_RangoInvalido(t *testing.T) {
	uc := analytics.NewDashboardUseCase(memory.NewStore().Metrics(), nil, 0).WithClock(fixedClock)

	for _, bad := range []int{0, 1, 15, 365, -7} {
		_, err := uc.GetKpis(context.Background(), bad)
		assert.ErrorIs(t, err, domain.ErrValidation, "rangeDays=%d", bad)
	}
}

func TestGetKpis_CalculaKpisYTendencias(t *testing.T) {
	store := memory.NewStore()

	// Ingresos: 300 en la ventana de 30 días, 100 en la ventana anterior.
	// La cancelada no suma.
	seedReservation(t, store, "actual", 10, 300, entity.ReservationConfirmed, fixedNow.AddDate(0, 0, 1))
	seedReservation(t, store, "previa", 40, 100, entity.ReservationCheckedOut, fixedNow.AddDate(0, 0, -38))
	seedReservation(t, store, "cancelada", 5, 999, entity.ReservationCancelled, fixedNow.AddDate(0, 0, 2))

	// Check-ins: 2 hoy, 1 ayer.
	today := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	seedReservation(t, store, "hoy-1", 2, 50, entity.ReservationConfirmed, today)
	seedReservation(t, store, "hoy-2", 2, 50, entity.ReservationConfirmed, today)
	seedReservation(t, store, "ayer", 3, 50, entity.ReservationCheckedOut, today.AddDate(0, 0, -1))

	// Habitaciones: 4 en total, 1 ocupada → 25%.
	seedRoom(t, store, "101", entity.RoomAvailable, 100)
	seedRoom(t, store, "102", entity.RoomOccupied, 100)
	seedRoom(t, store, "103", entity.RoomMaintenance, 100)
	seedRoom(t, store, "104", entity.RoomDisabled, 100)

	// Personal: 2 activos, 1 inactivo.
	for _, u := range []struct {
		email  string
		active bool
	}{{"a@h.com", true}, {"b@h.com", true}, {"c@h.com", false}} {
		require.NoError(t, store.Users().Create(context.Background(), &entity.User{
			ID: u.email, Name: u.email, Email: u.email, Role: entity.RoleStaff, IsActive: u.active,
		}))
	}

	uc := analytics.NewDashboardUseCase(store.Metrics(), nil, 0).WithClock(fixedClock)
	out, err := uc.GetKpis(context.Background(), 30)
	require.NoError(t, err)

	// Ventana de 30 días: actual(300) + hoy-1(50) + hoy-2(50) + ayer(50) = 450.
	// previa(100) cae en la ventana anterior y solo pesa en la tendencia.
	assert.True(t, decimal.NewFromInt(450).Equal(out.TotalRevenue), "esperaba 450, obtuve %s", out.TotalRevenue)
	assert.True(t, out.RevenueTrend.IsPositive)
	assert.InDelta(t, 350.0, out.RevenueTrend.Value, 0.01, "450 vs 100 es +350%%")

	assert.Equal(t, 2, out.TodaysReservations)
	assert.True(t, out.ReservationsTrend.IsPositive)
	assert.InDelta(t, 100.0, out.ReservationsTrend.Value, 0.01, "2 hoy vs 1 ayer")

	assert.Equal(t, 25, out.OccupancyRate)
	assert.Equal(t, 2, out.ActiveUsers)
	assert.Equal(t, 0.0, out.ActiveUsersTrend.Value)
	assert.True(t, out.ActiveUsersTrend.IsPositive)

	assert.Equal(t, 30, out.RangeDays)
	assert.Equal(t, "Últimos 30 días", out.DateLabel)
}

func TestGetKpis_SinHabitacionesOcupacionCero(t *testing.T) {
	uc := analytics.NewDashboardUseCase(memory.NewStore().Metrics(), nil, 0).WithClock(fixedClock)

	out, err := uc.GetKpis(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 0, out.OccupancyRate)
	assert.True(t, out.TotalRevenue.IsZero())
	assert.Equal(t, 0, out.TodaysReservations)
	// Sin datos previos las tendencias son planas y positivas.
	assert.Equal(t, 0.0, out.RevenueTrend.Value)
	assert.True(t, out.RevenueTrend.IsPositive)
}

func TestGetKpis_TendenciaNegativa(t *testing.T) {
	store := memory.NewStore()
	seedReservation(t, store, "actual", 3, 50, entity.ReservationConfirmed, fixedNow.AddDate(0, 0, 5))
	seedReservation(t, store, "previa", 10, 200, entity.ReservationCheckedOut, fixedNow.AddDate(0, 0, -9))

	uc := analytics.NewDashboardUseCase(store.Metrics(), nil, 0).WithClock(fixedClock)
	out, err := uc.GetKpis(context.Background(), 7)
	require.NoError(t, err)

	assert.False(t, out.RevenueTrend.IsPositive, "50 frente a 200 debe ser negativa")
	assert.InDelta(t, 75.0, out.RevenueTrend.Value, 0.01)
}

func TestGetKpis_UsaCache(t *testing.T) {
	store := memory.NewStore()
	seedReservation(t, store, "r1", 3, 500, entity.ReservationConfirmed, fixedNow.AddDate(0, 0, 1))

	cache := newFakeCache()
	uc := analytics.NewDashboardUseCase(store.Metrics(), cache, time.Minute).WithClock(fixedClock)

	first, err := uc.GetKpis(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "el primer miss debe escribir el snapshot")

	// Nuevos datos no afectan mientras el snapshot siga cacheado.
	seedReservation(t, store, "r2", 1, 900, entity.ReservationConfirmed, fixedNow.AddDate(0, 0, 1))

	second, err := uc.GetKpis(context.Background(), 30)
	require.NoError(t, err)
	assert.True(t, first.TotalRevenue.Equal(second.TotalRevenue), "debe servir el snapshot cacheado")
	assert.Equal(t, 1, cache.sets, "un hit no reescribe el cache")
}

func TestGetRevenueSeries_AgrupaPorMes(t *testing.T) {
	store := memory.NewStore()
	// Dos meses con datos dentro de la ventana de 90 días.
	seedReservation(t, store, "mayo-1", 30, 100, entity.ReservationCheckedOut, fixedNow.AddDate(0, 0, -28))
	seedReservation(t, store, "mayo-2", 25, 150, entity.ReservationCheckedOut, fixedNow.AddDate(0, 0, -23))
	seedReservation(t, store, "junio-1", 5, 200, entity.ReservationConfirmed, fixedNow.AddDate(0, 0, -3))
	seedReservation(t, store, "junio-cancelada", 4, 999, entity.ReservationCancelled, fixedNow.AddDate(0, 0, -2))

	uc := analytics.NewDashboardUseCase(store.Metrics(), nil, 0).WithClock(fixedClock)
	out, err := uc.GetRevenueSeries(context.Background(), 90)
	require.NoError(t, err)

	require.NotEmpty(t, out.Points)
	byMonth := make(map[string]struct {
		revenue      decimal.Decimal
		reservations int
	})
	for _, p := range out.Points {
		byMonth[p.Month] = struct {
			revenue      decimal.Decimal
			reservations int
		}{p.Revenue, p.Reservations}
	}

	mayo := byMonth["2026-05"]
	assert.True(t, decimal.NewFromInt(250).Equal(mayo.revenue), "mayo: esperaba 250, obtuve %s", mayo.revenue)
	assert.Equal(t, 2, mayo.reservations)

	junio := byMonth["2026-06"]
	assert.True(t, decimal.NewFromInt(200).Equal(junio.revenue), "junio: la cancelada no suma")
	assert.Equal(t, 1, junio.reservations)

	// Orden cronológico.
	for i := 1; i < len(out.Points); i++ {
		assert.Less(t, out.Points[i-1].Month, out.Points[i].Month)
	}
}

func TestGetRevenueSeries_RangoInvalido(t *testing.T) {
	uc := analytics.NewDashboardUseCase(memory.NewStore().Metrics(), nil, 0).WithClock(fixedClock)
	_, err := uc.GetRevenueSeries(context.Background(), 45)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
