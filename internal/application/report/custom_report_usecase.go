package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-scomm/internal/application/dto"
	appinv "github.com/jhoicas/inventario-scomm/internal/application/inventory"
	"github.com/jhoicas/inventario-scomm/internal/domain"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
)

// Formato por defecto de exportación.
const DefaultFormat = "csv"

// CustomReportUseCase constructor de reportes personalizados y exportaciones.
type CustomReportUseCase struct {
	reports   repository.CustomReportRepository
	products  repository.ProductRepository
	exporters map[string]Exporter
	loc       *time.Location
	now       func() time.Time
}

// NewCustomReportUseCase construye el caso de uso con los exportadores disponibles.
func NewCustomReportUseCase(
	reports repository.CustomReportRepository,
	products repository.ProductRepository,
	loc *time.Location,
	exporters ...Exporter,
) *CustomReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	byFormat := make(map[string]Exporter, len(exporters))
	for _, e := range exporters {
		byFormat[e.Format()] = e
	}
	return &CustomReportUseCase{reports: reports, products: products, exporters: byFormat, loc: loc, now: time.Now}
}

// Options categorías y proveedores existentes para los filtros.
func (uc *CustomReportUseCase) Options(ctx context.Context) (*dto.ReportOptionsDTO, error) {
	categories, err := uc.products.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}
	providers, err := uc.products.DistinctProviders(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ReportOptionsDTO{Categories: categories, Providers: providers, ReportTypes: Types}, nil
}

// Build ejecuta la forma correspondiente al report_type. Es el único camino
// hacia el repositorio, tanto para la vista como para la exportación.
func (uc *CustomReportUseCase) Build(ctx context.Context, req dto.CustomReportRequest) (*Table, error) {
	f, err := uc.filter(req)
	if err != nil {
		return nil, err
	}
	typ := ResolveType(req.ReportType)
	s := shapes[typ]

	rows, err := s.rows(ctx, uc.reports, f, uc.loc)
	if err != nil {
		return nil, fmt.Errorf("reporte %s: %w", typ, err)
	}
	t := &Table{
		Type:        typ,
		Title:       s.title,
		Columns:     s.columns,
		Rows:        rows,
		GeneratedAt: uc.now().In(uc.loc),
	}
	if len(rows) == 0 {
		t.Message = s.empty(f)
	}
	return t, nil
}

// Run vista interactiva del reporte.
func (uc *CustomReportUseCase) Run(ctx context.Context, req dto.CustomReportRequest) (*dto.CustomReportResponse, error) {
	t, err := uc.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dto.CustomReportResponse{
		ReportType:  t.Type,
		Title:       t.Title,
		Columns:     t.Columns,
		Rows:        t.Records(),
		Total:       len(t.Rows),
		Message:     t.Message,
		Filters:     req,
		GeneratedAt: t.GeneratedAt,
	}, nil
}

// Export genera reporte_{tipo}_{YYYYMMDD_HHMMSS}.{formato}.
func (uc *CustomReportUseCase) Export(ctx context.Context, req dto.CustomReportRequest) (*ExportFile, error) {
	e, format, err := uc.exporter(req.Format)
	if err != nil {
		return nil, err
	}
	t, err := uc.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	data, err := e.Export(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", format, err)
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("reporte_%s_%s.%s", t.Type, t.GeneratedAt.Format("20060102_150405"), format),
		ContentType: e.ContentType(),
		Data:        data,
	}, nil
}

// ExportInventory listado completo ordenado por nombre como inventario.csv.
func (uc *CustomReportUseCase) ExportInventory(ctx context.Context) (*ExportFile, error) {
	e, _, err := uc.exporter(DefaultFormat)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	t := InventoryTable(products, uc.loc)
	t.GeneratedAt = uc.now().In(uc.loc)
	data, err := e.Export(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("exportar inventario: %w", err)
	}
	return &ExportFile{Filename: "inventario.csv", ContentType: e.ContentType(), Data: data}, nil
}

func (uc *CustomReportUseCase) exporter(format string) (Exporter, string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = DefaultFormat
	}
	e, ok := uc.exporters[format]
	if !ok {
		return nil, "", fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
	}
	return e, format, nil
}

func (uc *CustomReportUseCase) filter(req dto.CustomReportRequest) (repository.CustomReportFilter, error) {
	f := repository.CustomReportFilter{
		Category:   strings.TrimSpace(req.Category),
		Provider:   strings.TrimSpace(req.Provider),
		StockLevel: strings.TrimSpace(req.StockLevel),
	}
	var err error
	if f.DateFrom, err = appinv.ParseDate(req.DateFrom, uc.loc); err != nil {
		return f, err
	}
	if f.DateTo, err = appinv.ParseDate(req.DateTo, uc.loc); err != nil {
		return f, err
	}
	return f, nil
}
