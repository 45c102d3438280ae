package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/jhoicas/facturapp-api/internal/application/dto"
	"github.com/jhoicas/facturapp-api/internal/domain"
	"github.com/jhoicas/facturapp-api/internal/domain/entity"
	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

// CategoryUseCase categorías de producto de una tienda.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. El nombre es único por tienda sin distinguir mayúsculas.
func (uc *CategoryUseCase) Create(ctx context.Context, shopID string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if err := uc.ensureUnique(ctx, shopID, "", name); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Category{
		ID:        uuid.New().String(),
		ShopID:    shopID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// List categorías de la tienda ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context, shopID string) (*dto.CategoryListResponse, error) {
	list, err := uc.repo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Items: items}, nil
}

// Update renombra una categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, shopID, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c, err := uc.get(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if err := uc.ensureUnique(ctx, shopID, id, name); err != nil {
		return nil, err
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Delete elimina una categoría. Falla con ErrConflict si tiene productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, shopID, id string) error {
	if _, err := uc.get(ctx, shopID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CategoryUseCase) get(ctx context.Context, shopID, id string) (*entity.Category, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.ShopID != shopID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (uc *CategoryUseCase) ensureUnique(ctx context.Context, shopID, selfID, name string) error {
	list, err := uc.repo.ListByShop(ctx, shopID)
	if err != nil {
		return err
	}
	fold := cases.Fold()
	key := fold.String(name)
	for _, c := range list {
		if c.ID != selfID && fold.String(c.Name) == key {
			return domain.ErrDuplicate
		}
	}
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, ShopID: c.ShopID, Name: c.Name}
}
