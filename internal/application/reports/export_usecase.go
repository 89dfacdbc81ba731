package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// Tipos de reporte admitidos.
const (
	ReportSales     = "sales"
	ReportOccupancy = "occupancy"
	ReportRevenue   = "revenue"
	ReportStaff     = "staff"
	ReportGuest     = "guest"
)

// Formatos de salida admitidos.
const (
	FormatPDF   = "pdf"
	FormatCSV   = "csv"
	FormatExcel = "excel"
)

var reportTitles = map[string]bool{
	ReportSales:     true,
	ReportOccupancy: true,
	ReportRevenue:   true,
	ReportStaff:     true,
	ReportGuest:     true,
}

// mimeByFormat y extByFormat: un formato sin entrada aquí no existe para la API.
var (
	mimeByFormat = map[string]string{
		FormatPDF:   "application/pdf",
		FormatCSV:   "text/csv",
		FormatExcel: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}
	extByFormat = map[string]string{
		FormatPDF:   "pdf",
		FormatCSV:   "csv",
		FormatExcel: "xlsx",
	}
)

// Artifact archivo de reporte generado, listo para descargar.
type Artifact struct {
	Bytes    []byte
	MimeType string
	Filename string
}

// Renderer convierte un dataset en bytes de un formato concreto.
// Las implementaciones viven en internal/infrastructure/export.
type Renderer interface {
	Render(ds *Dataset) ([]byte, error)
}

// ExportUseCase genera artefactos de reporte. Solo lee de los repositorios;
// no toma ningún lock de entidad durante el formateo.
type ExportUseCase struct {
	reservations repository.ReservationRepository
	rooms        repository.RoomRepository
	users        repository.UserRepository
	metrics      repository.MetricsRepository
	renderers    map[string]Renderer // formato → renderer
	nowFn        func() time.Time
}

// NewExportUseCase construye el caso de uso con un renderer por formato.
func NewExportUseCase(
	reservations repository.ReservationRepository,
	rooms repository.RoomRepository,
	users repository.UserRepository,
	metrics repository.MetricsRepository,
	renderers map[string]Renderer,
) *ExportUseCase {
	return &ExportUseCase{
		reservations: reservations,
		rooms:        rooms,
		users:        users,
		metrics:      metrics,
		renderers:    renderers,
		nowFn:        time.Now,
	}
}

// WithClock sustituye la fuente de tiempo (tests).
func (uc *ExportUseCase) WithClock(now func() time.Time) *ExportUseCase {
	uc.nowFn = now
	return uc
}

// Validate comprueba tipo, formato y rango sin tocar los repositorios.
// La cola de trabajos lo llama antes de encolar para devolver los errores de
// validación de forma síncrona.
func (uc *ExportUseCase) Validate(reportType, format string, start, end time.Time) error {
	if !reportTitles[reportType] {
		return domain.Validationf("reportType", "tipo de reporte desconocido %q", reportType)
	}
	if _, ok := uc.renderers[format]; !ok {
		return domain.Validationf("format", "formato desconocido %q", format)
	}
	if start.After(end) {
		return domain.Validationf("dateStart", "rango invertido: %s > %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return nil
}

// Generate construye el dataset del tipo pedido y lo renderiza. Para entradas
// idénticas los bytes son idénticos salvo la marca de generación.
func (uc *ExportUseCase) Generate(ctx context.Context, reportType, format string, start, end time.Time) (*Artifact, error) {
	if err := uc.Validate(reportType, format, start, end); err != nil {
		return nil, err
	}

	var (
		ds  *Dataset
		err error
	)
	switch reportType {
	case ReportSales:
		ds, err = uc.buildSales(ctx, start, end)
	case ReportOccupancy:
		ds, err = uc.buildOccupancy(ctx, start, end)
	case ReportRevenue:
		ds, err = uc.buildRevenue(ctx, start, end)
	case ReportStaff:
		ds, err = uc.buildStaff(ctx)
	case ReportGuest:
		ds, err = uc.buildGuest(ctx, start, end)
	}
	if err != nil {
		return nil, fmt.Errorf("reporte %s: %w", reportType, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ds.Subtitle = fmt.Sprintf("%s – %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	ds.GeneratedAt = uc.nowFn()

	bytes, err := uc.renderers[format].Render(ds)
	if err != nil {
		return nil, fmt.Errorf("renderizar %s como %s: %w", reportType, format, err)
	}
	return &Artifact{
		Bytes:    bytes,
		MimeType: mimeByFormat[format],
		Filename: fmt.Sprintf("reporte_%s_%s_%s.%s", reportType,
			start.Format("2006-01-02"), end.Format("2006-01-02"), extByFormat[format]),
	}, nil
}
