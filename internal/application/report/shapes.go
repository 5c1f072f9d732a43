package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-scomm/internal/application/dto"
	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
)

// Tipos de reporte personalizado.
const (
	TypeInventoryByCategory = "inventory_by_category"
	TypeLowStock            = "low_stock"
	TypeMovementsByPeriod   = "movements_by_period"
	TypeValueByProvider     = "value_by_provider"
	TypeGeneral             = "general"
)

// Types en el orden en que se ofrecen.
var Types = []string{
	TypeInventoryByCategory,
	TypeLowStock,
	TypeMovementsByPeriod,
	TypeValueByProvider,
	TypeGeneral,
}

func col(key, header string) dto.ReportColumnDTO {
	return dto.ReportColumnDTO{Key: key, Header: header}
}

// shape una forma de reporte: columnas, consulta y mensaje sin resultados.
type shape struct {
	title   string
	columns []dto.ReportColumnDTO
	rows    func(ctx context.Context, r repository.CustomReportRepository, f repository.CustomReportFilter, loc *time.Location) ([][]any, error)
	empty   func(f repository.CustomReportFilter) string
}

var shapes = map[string]shape{
	TypeInventoryByCategory: {
		title: "Inventario por categoría",
		columns: []dto.ReportColumnDTO{
			col("category", "Categoría"),
			col("total_products", "Total Productos"),
			col("total_quantity", "Total Cantidad"),
			col("total_value", "Valor Total"),
		},
		rows: func(ctx context.Context, r repository.CustomReportRepository, f repository.CustomReportFilter, _ *time.Location) ([][]any, error) {
			list, err := r.InventoryByCategory(ctx, f)
			return groupRows(list), err
		},
		empty: func(f repository.CustomReportFilter) string {
			if f.Category != "" {
				return fmt.Sprintf("No se encontraron productos en la categoría '%s'", f.Category)
			}
			return "No hay productos agrupados por categorías"
		},
	},
	TypeLowStock: {
		title: "Productos con stock bajo",
		columns: []dto.ReportColumnDTO{
			col("name", "Producto"),
			col("category", "Categoría"),
			col("quantity", "Cantidad"),
			col("stock_min", "Stock Mínimo"),
			col("provider", "Proveedor"),
			col("deficit", "Déficit"),
		},
		rows: func(ctx context.Context, r repository.CustomReportRepository, f repository.CustomReportFilter, _ *time.Location) ([][]any, error) {
			list, err := r.LowStock(ctx, f)
			if err != nil {
				return nil, err
			}
			out := make([][]any, 0, len(list))
			for _, l := range list {
				out = append(out, []any{l.Name, l.Category, l.Quantity, l.StockMin, l.Provider, l.Deficit})
			}
			return out, nil
		},
		empty: func(f repository.CustomReportFilter) string {
			if f.Category != "" {
				return fmt.Sprintf("No hay productos con stock bajo en la categoría '%s'", f.Category)
			}
			return "¡Excelente! No hay productos con stock bajo"
		},
	},
	TypeMovementsByPeriod: {
		title: "Movimientos por período",
		columns: []dto.ReportColumnDTO{
			col("created_at", "Fecha"),
			col("product_name", "Producto"),
			col("category", "Categoría"),
			col("movement_type", "Tipo"),
			col("quantity_change", "Cantidad"),
			col("reason", "Motivo"),
			col("username", "Usuario"),
		},
		rows: func(ctx context.Context, r repository.CustomReportRepository, f repository.CustomReportFilter, loc *time.Location) ([][]any, error) {
			list, err := r.MovementsByPeriod(ctx, f)
			if err != nil {
				return nil, err
			}
			out := make([][]any, 0, len(list))
			for _, m := range list {
				out = append(out, []any{m.CreatedAt.In(loc), m.ProductName, m.Category, m.MovementType,
					m.QuantityChange, m.Reason, m.Username})
			}
			return out, nil
		},
		empty: func(f repository.CustomReportFilter) string {
			period := ""
			switch {
			case f.DateFrom != nil && f.DateTo != nil:
				period = fmt.Sprintf(" entre %s y %s", f.DateFrom.Format(time.DateOnly), f.DateTo.Format(time.DateOnly))
			case f.DateFrom != nil:
				period = " desde " + f.DateFrom.Format(time.DateOnly)
			case f.DateTo != nil:
				period = " hasta " + f.DateTo.Format(time.DateOnly)
			}
			category := ""
			if f.Category != "" {
				category = fmt.Sprintf(" en la categoría '%s'", f.Category)
			}
			return "No se encontraron movimientos de inventario" + period + category
		},
	},
	TypeValueByProvider: {
		title: "Valor por proveedor",
		columns: []dto.ReportColumnDTO{
			col("provider", "Proveedor"),
			col("total_products", "Total Productos"),
			col("total_quantity", "Total Cantidad"),
			col("total_value", "Valor Total"),
		},
		rows: func(ctx context.Context, r repository.CustomReportRepository, f repository.CustomReportFilter, _ *time.Location) ([][]any, error) {
			list, err := r.ValueByProvider(ctx, f)
			return groupRows(list), err
		},
		empty: func(f repository.CustomReportFilter) string {
			if f.Provider != "" {
				return fmt.Sprintf("No se encontraron productos del proveedor '%s'", f.Provider)
			}
			return "No hay productos agrupados por proveedor"
		},
	},
	TypeGeneral: {
		title: "Reporte general de inventario",
		columns: []dto.ReportColumnDTO{
			col("name", "Producto"),
			col("category", "Categoría"),
			col("quantity", "Cantidad"),
			col("price", "Precio"),
			col("provider", "Proveedor"),
			col("stock_min", "Stock Mínimo"),
			col("created_at", "Fecha Creación"),
		},
		rows: func(ctx context.Context, r repository.CustomReportRepository, f repository.CustomReportFilter, loc *time.Location) ([][]any, error) {
			list, err := r.General(ctx, f)
			if err != nil {
				return nil, err
			}
			out := make([][]any, 0, len(list))
			for _, p := range list {
				out = append(out, []any{p.Name, p.Category, p.Quantity, p.Price, p.Provider, p.StockMin, p.CreatedAt.In(loc)})
			}
			return out, nil
		},
		empty: func(f repository.CustomReportFilter) string {
			var applied []string
			if f.Category != "" {
				applied = append(applied, fmt.Sprintf("categoría '%s'", f.Category))
			}
			if f.Provider != "" {
				applied = append(applied, fmt.Sprintf("proveedor '%s'", f.Provider))
			}
			switch f.StockLevel {
			case repository.StockLevelLow:
				applied = append(applied, "stock bajo")
			case repository.StockLevelHigh:
				applied = append(applied, "stock alto")
			}
			if len(applied) > 0 {
				return "No se encontraron productos con los filtros: " + strings.Join(applied, " y ")
			}
			return "No hay productos registrados en el inventario"
		},
	},
}

// ResolveType un report_type desconocido o vacío cae en general.
func ResolveType(t string) string {
	if _, ok := shapes[t]; ok {
		return t
	}
	return TypeGeneral
}

func groupRows(list []repository.GroupValueRow) [][]any {
	out := make([][]any, 0, len(list))
	for _, g := range list {
		out = append(out, []any{g.Key, g.TotalProducts, g.TotalQuantity, g.TotalValue})
	}
	return out
}

// inventoryColumns columnas de inventario.csv.
var inventoryColumns = []dto.ReportColumnDTO{
	col("id", "ID"),
	col("name", "Nombre"),
	col("category", "Categoría"),
	col("quantity", "Cantidad"),
	col("price", "Precio"),
	col("provider", "Proveedor"),
	col("stock_min", "Stock Mínimo"),
	col("created_at", "Fecha de Creación"),
}

// InventoryTable listado completo de productos para inventario.csv.
func InventoryTable(products []*entity.Product, loc *time.Location) *Table {
	if loc == nil {
		loc = time.UTC
	}
	t := &Table{
		Type:    "inventario",
		Title:   "Inventario",
		Columns: inventoryColumns,
		Rows:    make([][]any, 0, len(products)),
	}
	for _, p := range products {
		t.Rows = append(t.Rows, []any{p.ID, p.Name, p.Category, p.Quantity, p.Price, p.Provider, p.StockMin, p.CreatedAt.In(loc)})
	}
	return t
}
