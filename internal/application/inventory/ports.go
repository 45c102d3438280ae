package inventory

import (
	"context"

	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

// StockTxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que un lote de movimientos se aplica completo o no se aplica.
type StockTxRunner interface {
	RunStock(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// Metrics señales del libro de stock. Un valor nil no registra nada.
type Metrics interface {
	MovementApplied(movementType string)
}

type noopMetrics struct{}

func (noopMetrics) MovementApplied(string) {}
