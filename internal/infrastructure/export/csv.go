// Package export serializa tablas de reporte a CSV y XLSX.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/jhoicas/inventario-scomm/internal/application/report"
)

var _ report.Exporter = (*CSVExporter)(nil)

// CSVExporter fila de encabezados y luego una fila por registro, todo como texto.
type CSVExporter struct{}

// NewCSVExporter construye el exportador.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

// Format ver report.Exporter.
func (e *CSVExporter) Format() string { return "csv" }

// ContentType ver report.Exporter.
func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// Export ver report.Exporter.
func (e *CSVExporter) Export(_ context.Context, t *report.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Headers()); err != nil {
		return nil, fmt.Errorf("csv: encabezados: %w", err)
	}
	if err := w.WriteAll(t.StringRows()); err != nil {
		return nil, fmt.Errorf("csv: filas: %w", err)
	}
	return buf.Bytes(), nil
}
