package repository

import (
	"context"

	"github.com/jhoicas/facturapp-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id string) error
	ListByShop(ctx context.Context, shopID string) ([]*entity.Category, error)
}
