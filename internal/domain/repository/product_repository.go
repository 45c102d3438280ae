package repository

import (
	"context"

	"github.com/jhoicas/facturapp-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE). Solo dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, shopID, barcode string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantity(ctx context.Context, id string, quantity int64) error
	ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*entity.Product, error)
	// CountReferences cuenta líneas de factura y movimientos de stock que apuntan al producto.
	CountReferences(ctx context.Context, id string) (int, error)
	Delete(ctx context.Context, id string) error
}
