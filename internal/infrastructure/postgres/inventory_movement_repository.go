package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `id, product_id, product_name, movement_type, quantity_before, quantity_after,
	quantity_change, COALESCE(reason, ''), user_id, username, created_at`

// InventoryMovementRepo ledger sobre PostgreSQL: solo INSERT y SELECT.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create agrega una fila al ledger. IDs v7 para que el desempate por id
// respete el orden de escritura.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("create inventory movement: %w", err)
		}
		m.ID = id.String()
	}
	var reason *string
	if m.Reason != "" {
		reason = &m.Reason
	}
	query := `
		INSERT INTO inventory_movements (id, product_id, product_name, movement_type, quantity_before,
			quantity_after, quantity_change, reason, user_id, username, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.ProductName, m.Type, m.QuantityBefore,
		m.QuantityAfter, m.QuantityChange, reason, m.UserID, m.Username, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// movementPredicates compone los filtros del historial. List y Count usan la
// misma lista, así el total siempre corresponde a las filas paginadas.
func movementPredicates(f repository.MovementFilter) *Predicates {
	p := &Predicates{}
	p.AddIf(f.ProductName != "", "product_name ILIKE ?", likePattern(f.ProductName))
	p.AddIf(f.MovementType != "", "movement_type = ?", f.MovementType)
	if f.DateFrom != nil {
		p.Add("created_at::date >= ?::date", f.DateFrom.Format("2006-01-02"))
	}
	if f.DateTo != nil {
		p.Add("created_at::date <= ?::date", f.DateTo.Format("2006-01-02"))
	}
	return p
}

// List devuelve una página del historial, más recientes primero.
func (r *InventoryMovementRepo) List(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.InventoryMovement, error) {
	p := movementPredicates(f)
	query := `SELECT ` + movementColumns + ` FROM inventory_movements` + p.Where() +
		` ORDER BY created_at DESC, id DESC LIMIT ` + p.Bind(limit) + ` OFFSET ` + p.Bind(offset)

	rows, err := r.q.Query(ctx, query, p.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// Count total de movimientos que cumplen el filtro.
func (r *InventoryMovementRepo) Count(ctx context.Context, f repository.MovementFilter) (int, error) {
	p := movementPredicates(f)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_movements`+p.Where(), p.Args()...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func collectMovements(rows pgx.Rows) ([]*entity.InventoryMovement, error) {
	list := make([]*entity.InventoryMovement, 0)
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.ProductName, &m.Type, &m.QuantityBefore,
			&m.QuantityAfter, &m.QuantityChange, &m.Reason, &m.UserID, &m.Username, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
