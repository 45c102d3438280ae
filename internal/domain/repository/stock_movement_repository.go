package repository

import (
	"context"

	"github.com/jhoicas/facturapp-api/internal/domain/entity"
)

// StockMovementRepository libro de stock (solo inserción y lectura).
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	// ListByShop historial de la tienda, más reciente primero, con el nombre del producto.
	ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*entity.StockMovement, error)
}
