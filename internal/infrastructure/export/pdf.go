package export

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Hoteleria-api/internal/application/reports"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.Renderer = (*PDFRenderer)(nil)

// PDFRenderer renderiza el dataset como tabla A4 con Maroto v2: título y
// rango en cabecera, columnas repartidas en la rejilla de 12, fila de totales
// en negrita y marca de generación al pie.
type PDFRenderer struct{}

// NewPDFRenderer construye el renderer.
func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

// Render genera el PDF y devuelve sus bytes.
func (r *PDFRenderer) Render(ds *reports.Dataset) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(ds.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(ds))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(columnsRow(ds.Columns))
	for _, tr := range tableRows(ds) {
		m.AddRows(tr)
	}
	if len(ds.Totals) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(totalsRow(ds))
	}
	m.AddRows(line.NewRow(2))
	m.AddRows(footerRow(ds))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y rango de fechas (der).
func headerRow(ds *reports.Dataset) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New(ds.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(5).Add(
			text.New(ds.Subtitle, props.Text{
				Size: 9, Align: align.Right, Color: colorGray, Top: 5,
			}),
		),
	)
}

// columnWidths reparte la rejilla de 12 entre las columnas del dataset;
// las primeras absorben el resto de la división.
func columnWidths(n int) []int {
	if n == 0 {
		return nil
	}
	base := 12 / n
	extra := 12 % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < extra {
			widths[i]++
		}
	}
	return widths
}

func columnsRow(columns []string) core.Row {
	widths := columnWidths(len(columns))
	cols := make([]core.Col, 0, len(columns))
	for i, label := range columns {
		cols = append(cols, col.New(widths[i]).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		))
	}
	return row.New(7).Add(cols...)
}

func tableRows(ds *reports.Dataset) []core.Row {
	widths := columnWidths(len(ds.Columns))
	result := make([]core.Row, 0, len(ds.Rows))
	for _, dsRow := range ds.Rows {
		cols := make([]core.Col, 0, len(dsRow))
		for i, cell := range dsRow {
			cols = append(cols, col.New(widths[i]).Add(
				text.New(cell, props.Text{Size: 8, Top: 1}),
			))
		}
		result = append(result, row.New(6).Add(cols...))
	}
	return result
}

func totalsRow(ds *reports.Dataset) core.Row {
	widths := columnWidths(len(ds.Columns))
	cols := make([]core.Col, 0, len(ds.Totals))
	for i, cell := range ds.Totals {
		cols = append(cols, col.New(widths[i]).Add(
			text.New(cell, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}),
		))
	}
	return row.New(7).Add(cols...)
}

func footerRow(ds *reports.Dataset) core.Row {
	return row.New(6).Add(
		col.New(12).Add(
			text.New("Generado: "+ds.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Color: colorGray, Align: align.Right,
			}),
		),
	)
}
