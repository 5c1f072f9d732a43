// Package report arma los reportes personalizados: una forma por report_type,
// compartida entre la vista interactiva y la exportación.
package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-scomm/internal/application/dto"
)

// Formato de fechas en celdas exportadas.
const CellTimeLayout = "2006-01-02 15:04:05"

// Table resultado tabular de un reporte. Rows guarda los valores tipados en
// el orden de Columns.
type Table struct {
	Type        string
	Title       string
	Columns     []dto.ReportColumnDTO
	Rows        [][]any
	Message     string
	GeneratedAt time.Time
}

// Headers encabezados de exportación.
func (t *Table) Headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Header
	}
	return out
}

// StringRows todas las celdas como texto.
func (t *Table) StringRows() [][]string {
	out := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		cells := make([]string, len(r))
		for j, v := range r {
			cells[j] = Cell(v)
		}
		out[i] = cells
	}
	return out
}

// Records filas como objetos JSON con las claves de Columns.
func (t *Table) Records() []map[string]any {
	out := make([]map[string]any, len(t.Rows))
	for i, r := range t.Rows {
		rec := make(map[string]any, len(t.Columns))
		for j, c := range t.Columns {
			if j < len(r) {
				rec[c.Key] = r[j]
			}
		}
		out[i] = rec
	}
	return out
}

// Cell convierte un valor a su representación de celda.
func Cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case decimal.Decimal:
		return x.String()
	case time.Time:
		return x.Format(CellTimeLayout)
	default:
		return fmt.Sprint(v)
	}
}
