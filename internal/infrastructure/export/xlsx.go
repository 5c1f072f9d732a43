package export

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-scomm/internal/application/report"
)

var _ report.Exporter = (*XLSXExporter)(nil)

// Nombre de la hoja del libro exportado.
const SheetName = "Reporte"

// XLSXExporter una hoja con encabezados en negrita; números como números.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

// Format ver report.Exporter.
func (e *XLSXExporter) Format() string { return "xlsx" }

// ContentType ver report.Exporter.
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export ver report.Exporter.
func (e *XLSXExporter) Export(_ context.Context, t *report.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: hoja: %w", err)
	}

	headers := make([]any, 0, len(t.Columns))
	for _, h := range t.Headers() {
		headers = append(headers, h)
	}
	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("xlsx: encabezados: %w", err)
	}
	if len(headers) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, fmt.Errorf("xlsx: estilo: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return nil, fmt.Errorf("xlsx: %w", err)
		}
		if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
			return nil, fmt.Errorf("xlsx: estilo: %w", err)
		}
	}

	for i, r := range t.Rows {
		cells := make([]any, 0, len(r))
		for _, v := range r {
			cells = append(cells, cellValue(v))
		}
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx: %w", err)
		}
		if err := f.SetSheetRow(SheetName, start, &cells); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

// cellValue enteros y decimales quedan numéricos; fechas y el resto como texto.
func cellValue(v any) any {
	switch x := v.(type) {
	case int:
		return x
	case decimal.Decimal:
		return x.InexactFloat64()
	case time.Time:
		return x.Format(report.CellTimeLayout)
	default:
		return report.Cell(v)
	}
}
