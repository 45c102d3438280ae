package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturapp-api/internal/domain/entity"
	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de stock sobre PostgreSQL. Solo inserta y lee.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO stock_movements (id, product_id, shop_id, type, quantity, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.ProductID, m.ShopID, string(m.Type), m.Quantity, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByShop historial de la tienda, más reciente primero, con el nombre del producto.
func (r *StockMovementRepo) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT m.id, m.product_id, m.shop_id, m.type, m.quantity, p.name, m.created_at
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.shop_id = $1
		ORDER BY m.created_at DESC, m.id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, shopID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var typ string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.ShopID, &typ, &m.Quantity, &m.ProductName, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.Type = entity.MovementType(typ)
		list = append(list, &m)
	}
	return list, rows.Err()
}
