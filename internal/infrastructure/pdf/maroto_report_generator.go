// Package pdf genera la versión PDF de los reportes personalizados.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una columna por encabezado del reporte               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de filas o mensaje sin resultados             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-scomm/internal/application/report"
)

var _ report.Exporter = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const gridSize = 12

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.Exporter usando Maroto v2.
type MarotoReportGenerator struct {
	author string
}

// NewMarotoReportGenerator construye el generador; author va en los metadatos.
func NewMarotoReportGenerator(author string) *MarotoReportGenerator {
	return &MarotoReportGenerator{author: author}
}

// Format ver report.Exporter.
func (g *MarotoReportGenerator) Format() string { return "pdf" }

// ContentType ver report.Exporter.
func (g *MarotoReportGenerator) ContentType() string { return "application/pdf" }

// Export genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) Export(_ context.Context, t *report.Table) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(t.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	sizes := columnSizes(len(t.Columns))
	m.AddRows(tableHeaderRow(t, sizes))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range tableRows(t, sizes) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(t))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(t *report.Table) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(t.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Tipo: "+t.Type, props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+t.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(t *report.Table, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(t.Columns))
	for i, c := range t.Columns {
		cols = append(cols, col.New(sizes[i]).Add(text.New(c.Header, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

// tableRows: una fila por registro; los números se alinean a la derecha.
func tableRows(t *report.Table, sizes []int) []core.Row {
	result := make([]core.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		cols := make([]core.Col, 0, len(r))
		for i, v := range r {
			if i >= len(sizes) {
				break
			}
			cols = append(cols, col.New(sizes[i]).Add(text.New(cellText(v), props.Text{
				Size: 7, Align: cellAlign(v), Top: 1, Left: 1, Right: 1,
			})))
		}
		result = append(result, row.New(6).Add(cols...))
	}
	return result
}

// footerRow: total de registros o el mensaje de reporte vacío.
func footerRow(t *report.Table) core.Row {
	msg := fmt.Sprintf("Total de registros: %d", len(t.Rows))
	if len(t.Rows) == 0 && t.Message != "" {
		msg = t.Message
	}
	return row.New(10).Add(col.New(gridSize).Add(
		text.New(msg, props.Text{Style: fontstyle.Italic, Size: 8, Color: colorGray, Top: 3}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// columnSizes reparte las 12 columnas de la grilla; el sobrante va a las primeras.
func columnSizes(n int) []int {
	if n == 0 {
		return nil
	}
	sizes := make([]int, n)
	base, rest := gridSize/n, gridSize%n
	for i := range sizes {
		sizes[i] = max(base, 1)
		if i < rest {
			sizes[i]++
		}
	}
	return sizes
}

func cellText(v any) string {
	if d, ok := v.(decimal.Decimal); ok {
		return "$" + formatDecimal(d)
	}
	return report.Cell(v)
}

func cellAlign(v any) align.Type {
	switch v.(type) {
	case int, decimal.Decimal:
		return align.Right
	}
	return align.Left
}

// formatDecimal separador de miles '.' y decimales ','. Ej: 1234567.5 → "1.234.567,50".
func formatDecimal(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	out := formatMoney(intPart) + "," + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
