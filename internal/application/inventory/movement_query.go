package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-scomm/internal/application/dto"
	"github.com/jhoicas/inventario-scomm/internal/domain"
	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
)

// MovementQueryUseCase consulta paginada del historial de movimientos.
type MovementQueryUseCase struct {
	movements repository.InventoryMovementRepository
	loc       *time.Location
}

// NewMovementQueryUseCase construye el caso de uso. loc es la zona de las
// fechas de filtro (nil = UTC).
func NewMovementQueryUseCase(movements repository.InventoryMovementRepository, loc *time.Location) *MovementQueryUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &MovementQueryUseCase{movements: movements, loc: loc}
}

// ParseDate interpreta YYYY-MM-DD en loc; vacío devuelve nil.
func ParseDate(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
	}
	return &t, nil
}

// List aplica los filtros y devuelve la página pedida (50 por página).
// Una página más allá del final devuelve filas vacías.
func (uc *MovementQueryUseCase) List(ctx context.Context, q dto.MovementQuery) (*dto.MovementListResponse, error) {
	filter, err := uc.filter(q)
	if err != nil {
		return nil, err
	}
	q.Page = dto.NormalizePage(q.Page)

	total, err := uc.movements.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	list, err := uc.movements.List(ctx, filter, dto.DefaultPerPage, dto.Offset(q.Page, dto.DefaultPerPage))
	if err != nil {
		return nil, err
	}

	rows := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		rows = append(rows, ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Movements:  rows,
		Pagination: dto.NewPagination(q.Page, dto.DefaultPerPage, total),
		Filters:    q,
	}, nil
}

func (uc *MovementQueryUseCase) filter(q dto.MovementQuery) (repository.MovementFilter, error) {
	f := repository.MovementFilter{
		ProductName:  strings.TrimSpace(q.Product),
		MovementType: strings.TrimSpace(q.MovementType),
	}
	if f.MovementType != "" && !entity.ValidMovementType(f.MovementType) {
		return f, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, f.MovementType)
	}
	var err error
	if f.DateFrom, err = ParseDate(q.DateFrom, uc.loc); err != nil {
		return f, err
	}
	if f.DateTo, err = ParseDate(q.DateTo, uc.loc); err != nil {
		return f, err
	}
	return f, nil
}

// ToMovementResponse convierte una fila del ledger a DTO.
func ToMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		ProductName:    m.ProductName,
		MovementType:   m.Type,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		QuantityChange: m.QuantityChange,
		Reason:         m.Reason,
		UserID:         m.UserID,
		Username:       m.Username,
		CreatedAt:      m.CreatedAt,
	}
}
