package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-scomm/internal/application/dto"
	"github.com/jhoicas/inventario-scomm/internal/application/report"
)

func TestExport_GeneraPDF(t *testing.T) {
	tbl := &report.Table{
		Type:  "low_stock",
		Title: "Productos con stock bajo",
		Columns: []dto.ReportColumnDTO{
			{Key: "name", Header: "Producto"},
			{Key: "quantity", Header: "Cantidad"},
			{Key: "price", Header: "Precio"},
		},
		Rows: [][]any{
			{"Tuerca", 1, decimal.RequireFromString("1500.5")},
			{"Tornillo", 0, decimal.Zero},
		},
		GeneratedAt: time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
	}

	data, err := NewMarotoReportGenerator("Inventario SCOMM").Export(context.Background(), tbl)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExport_ReporteVacio(t *testing.T) {
	tbl := &report.Table{
		Type:    "general",
		Title:   "Reporte general de inventario",
		Columns: []dto.ReportColumnDTO{{Key: "name", Header: "Producto"}},
		Message: "No hay productos registrados en el inventario",
	}
	data, err := NewMarotoReportGenerator("").Export(context.Background(), tbl)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestColumnSizes(t *testing.T) {
	assert.Equal(t, []int{3, 3, 3, 3}, columnSizes(4))
	assert.Equal(t, []int{2, 2, 2, 2, 2, 2}, columnSizes(6))
	assert.Equal(t, []int{2, 2, 2, 2, 2, 1, 1}, columnSizes(7))
	assert.Nil(t, columnSizes(0))
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "1.234.567,50", formatDecimal(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "0,00", formatDecimal(decimal.Zero))
	assert.Equal(t, "-25.000,00", formatDecimal(decimal.NewFromInt(-25000)))
}
