package reports_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hoteleria-api/internal/application/reports"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/export"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/memory"
)

var (
	rangeStart = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd   = time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
)

func newExportUC(store *memory.Store) *reports.ExportUseCase {
	return reports.NewExportUseCase(
		store.Reservations(), store.Rooms(), store.Users(), store.Metrics(),
		map[string]reports.Renderer{
			reports.FormatCSV: export.NewCSVRenderer(),
		},
	)
}

func seedExportFixture(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	room := &entity.Room{
		ID: "room-101", RoomNumber: "101", Type: entity.RoomTypeStandard,
		Rate: decimal.NewFromInt(150), Status: entity.RoomAvailable, MaxOccupancy: 2,
	}
	require.NoError(t, store.Rooms().Create(ctx, room))

	for i, d := range []struct {
		id, guest, status string
		price             int64
	}{
		{"res-1", "Ana Torres", entity.ReservationCheckedOut, 450},
		{"res-2", "Luis Prado", entity.ReservationConfirmed, 300},
		{"res-3", "Eva Sanz", entity.ReservationCancelled, 999},
	} {
		created := rangeStart.AddDate(0, 0, i+2)
		require.NoError(t, store.Reservations().Create(ctx, &entity.Reservation{
			ID: d.id, GuestName: d.guest, RoomID: room.ID, RoomNumber: room.RoomNumber,
			Status: d.status, PaymentStatus: entity.PaymentPaid,
			CheckIn: created, CheckOut: created.AddDate(0, 0, 3),
			TotalPrice: decimal.NewFromInt(d.price),
			CreatedAt:  created, UpdatedAt: created,
		}))
	}
}

func TestValidate_Errores(t *testing.T) {
	uc := newExportUC(memory.NewStore())

	err := uc.Validate("audit", reports.FormatCSV, rangeStart, rangeEnd)
	assert.ErrorIs(t, err, domain.ErrValidation, "tipo desconocido")

	err = uc.Validate(reports.ReportSales, "docx", rangeStart, rangeEnd)
	assert.ErrorIs(t, err, domain.ErrValidation, "formato sin renderer")

	err = uc.Validate(reports.ReportSales, reports.FormatCSV, rangeEnd, rangeStart)
	assert.ErrorIs(t, err, domain.ErrValidation, "rango invertido")

	assert.NoError(t, uc.Validate(reports.ReportSales, reports.FormatCSV, rangeStart, rangeEnd))
}

func TestGenerate_ArtefactoCSV(t *testing.T) {
	store := memory.NewStore()
	seedExportFixture(t, store)
	uc := newExportUC(store)

	art, err := uc.Generate(context.Background(), reports.ReportSales, reports.FormatCSV, rangeStart, rangeEnd)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", art.MimeType)
	assert.Equal(t, "reporte_sales_2026-03-01_2026-03-31.csv", art.Filename)
	assert.NotEmpty(t, art.Bytes)

	content := string(art.Bytes)
	assert.Contains(t, content, "# generado:")
	assert.Contains(t, content, "Ana Torres")
	assert.Contains(t, content, "Luis Prado")
}

// Los bytes deben ser idénticos para entradas idénticas, con la única
// excepción de la primera línea (la marca de generación).
func TestGenerate_CSVDeterminista(t *testing.T) {
	store := memory.NewStore()
	seedExportFixture(t, store)

	gen := func(now time.Time) []byte {
		uc := newExportUC(store).WithClock(func() time.Time { return now })
		art, err := uc.Generate(context.Background(), reports.ReportSales, reports.FormatCSV, rangeStart, rangeEnd)
		require.NoError(t, err)
		return art.Bytes
	}

	a := gen(time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC))
	b := gen(time.Date(2026, 4, 2, 16, 30, 0, 0, time.UTC))

	assert.NotEqual(t, firstLine(a), firstLine(b), "la marca de generación cambia")
	assert.Equal(t, afterFirstLine(a), afterFirstLine(b), "el contenido no cambia")
}

func TestGenerate_TodosLosTipos(t *testing.T) {
	store := memory.NewStore()
	seedExportFixture(t, store)
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		ID: "u1", Name: "Admin", Email: "admin@hotel.demo", Role: entity.RoleAdmin, IsActive: true,
	}))
	uc := newExportUC(store)

	for _, typ := range []string{
		reports.ReportSales, reports.ReportOccupancy, reports.ReportRevenue,
		reports.ReportStaff, reports.ReportGuest,
	} {
		art, err := uc.Generate(context.Background(), typ, reports.FormatCSV, rangeStart, rangeEnd)
		require.NoError(t, err, "tipo %s", typ)
		assert.NotEmpty(t, art.Bytes, "tipo %s", typ)
	}
}

func TestGenerate_ContextoCancelado(t *testing.T) {
	store := memory.NewStore()
	seedExportFixture(t, store)
	uc := newExportUC(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Generate(ctx, reports.ReportSales, reports.FormatCSV, rangeStart, rangeEnd)
	assert.ErrorIs(t, err, context.Canceled)
}

func firstLine(b []byte) string {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

func afterFirstLine(b []byte) string {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return string(b[i+1:])
	}
	return ""
}
