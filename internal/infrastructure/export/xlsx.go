package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Hoteleria-api/internal/application/reports"
)

var _ reports.Renderer = (*XLSXRenderer)(nil)

// XLSXRenderer serializa el dataset como libro XLSX de una hoja: título,
// subtítulo, marca de generación, cabecera en negrita y fila de totales.
type XLSXRenderer struct{}

// NewXLSXRenderer construye el renderer.
func NewXLSXRenderer() *XLSXRenderer { return &XLSXRenderer{} }

// Render serializa el dataset.
func (r *XLSXRenderer) Render(ds *reports.Dataset) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reporte"
	f.SetSheetName("Sheet1", sheet)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	setRow := func(rowIdx int, values []string, style int) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		cells := make([]any, len(values))
		for i, v := range values {
			cells[i] = v
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
		if style != 0 {
			last, err := excelize.CoordinatesToCellName(len(values), rowIdx)
			if err != nil {
				return err
			}
			return f.SetCellStyle(sheet, cell, last, style)
		}
		return nil
	}

	if err := setRow(1, []string{ds.Title}, bold); err != nil {
		return nil, fmt.Errorf("xlsx: título: %w", err)
	}
	if err := setRow(2, []string{ds.Subtitle}, 0); err != nil {
		return nil, fmt.Errorf("xlsx: subtítulo: %w", err)
	}
	if err := setRow(3, []string{"Generado: " + ds.GeneratedAt.UTC().Format(time.RFC3339)}, 0); err != nil {
		return nil, fmt.Errorf("xlsx: marca de generación: %w", err)
	}
	if err := setRow(5, ds.Columns, bold); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}

	rowIdx := 6
	for _, row := range ds.Rows {
		if err := setRow(rowIdx, row, 0); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", rowIdx, err)
		}
		rowIdx++
	}
	if len(ds.Totals) > 0 {
		if err := setRow(rowIdx, ds.Totals, bold); err != nil {
			return nil, fmt.Errorf("xlsx: totales: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
