package billing

import (
	"context"

	"github.com/jhoicas/facturapp-api/internal/domain"
	"github.com/jhoicas/facturapp-api/internal/domain/entity"
	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

// authorize permite operar sobre la factura a su dueño y a los miembros de su tienda.
func authorize(ctx context.Context, shops repository.ShopRepository, inv *entity.Invoice, userID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	if inv.UserID == userID {
		return nil
	}
	if inv.ShopID == "" {
		return domain.ErrForbidden
	}
	ok, err := shops.IsMemberOrOwner(ctx, inv.ShopID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}
