package repository

import (
	"context"

	"github.com/jhoicas/facturapp-api/internal/domain/entity"
)

// ShopRepository define el puerto de persistencia para Shop y sus miembros.
type ShopRepository interface {
	Create(ctx context.Context, shop *entity.Shop) error
	GetByID(ctx context.Context, id string) (*entity.Shop, error)
	Update(ctx context.Context, shop *entity.Shop) error
	// Delete elimina la tienda; categorías, productos, movimientos y facturas caen en cascada.
	Delete(ctx context.Context, id string) error
	// ListByUser tiendas de las que el usuario es dueño o miembro.
	ListByUser(ctx context.Context, userID string) ([]*entity.Shop, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	AddMember(ctx context.Context, shopID, userID string) error
	ListMembers(ctx context.Context, shopID string) ([]*entity.User, error)
	// IsMemberOrOwner indica si el usuario puede operar sobre la tienda.
	IsMemberOrOwner(ctx context.Context, shopID, userID string) (bool, error)
}
