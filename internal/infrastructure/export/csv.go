// Package export implementa los renderers de reportes (CSV, XLSX y PDF)
// sobre el Dataset genérico de application/reports.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jhoicas/Hoteleria-api/internal/application/reports"
)

var _ reports.Renderer = (*CSVRenderer)(nil)

// CSVRenderer serializa el dataset como CSV UTF-8. La primera línea es un
// comentario con la marca de tiempo de generación; el resto del contenido es
// una función pura del dataset, así que dos corridas sobre los mismos datos
// producen bytes idénticos a partir de la segunda línea.
type CSVRenderer struct{}

// NewCSVRenderer construye el renderer.
func NewCSVRenderer() *CSVRenderer { return &CSVRenderer{} }

// Render serializa el dataset.
func (r *CSVRenderer) Render(ds *reports.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# generado: %s\n", ds.GeneratedAt.UTC().Format(time.RFC3339))

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{ds.Title + " - " + ds.Subtitle}); err != nil {
		return nil, fmt.Errorf("csv: escribir título: %w", err)
	}
	if err := w.Write(ds.Columns); err != nil {
		return nil, fmt.Errorf("csv: escribir cabecera: %w", err)
	}
	for _, row := range ds.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("csv: escribir fila: %w", err)
		}
	}
	if len(ds.Totals) > 0 {
		if err := w.Write(ds.Totals); err != nil {
			return nil, fmt.Errorf("csv: escribir totales: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: flush: %w", err)
	}
	return buf.Bytes(), nil
}
