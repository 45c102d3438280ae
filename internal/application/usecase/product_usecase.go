package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/facturapp-api/internal/application/dto"
	"github.com/jhoicas/facturapp-api/internal/domain"
	"github.com/jhoicas/facturapp-api/internal/domain/entity"
	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. La cantidad se corrige con
// movimientos de stock o, puntualmente, editando el producto.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un producto en la tienda. La categoría es obligatoria y debe ser de la misma tienda.
func (uc *ProductUseCase) Create(ctx context.Context, shopID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, domain.NewValidationError("price", "no puede ser negativo")
	}
	if err := uc.checkCategory(ctx, shopID, in.CategoryID); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		ShopID:      shopID,
		CategoryID:  in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Barcode:     strings.TrimSpace(in.Barcode),
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Get obtiene un producto de la tienda.
func (uc *ProductUseCase) Get(ctx context.Context, shopID, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByBarcode busca por código de barras dentro de la tienda (escaneo al facturar).
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, shopID, barcode string) (*dto.ProductResponse, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, domain.NewValidationError("barcode", "es requerido")
	}
	product, err := uc.repo.GetByBarcode(ctx, shopID, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos enviados.
func (uc *ProductUseCase) Update(ctx context.Context, shopID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	product, err := uc.get(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.NewValidationError("price", "no puede ser negativo")
		}
		product.Price = *in.Price
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		if err := uc.checkCategory(ctx, shopID, *in.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Barcode != nil {
		product.Barcode = strings.TrimSpace(*in.Barcode)
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos de la tienda por nombre, con paginación.
func (uc *ProductUseCase) List(ctx context.Context, shopID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.Normalize()
	list, err := uc.repo.ListByShop(ctx, shopID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un producto. Si alguna línea de factura o movimiento lo
// referencia devuelve ErrProductInUse.
func (uc *ProductUseCase) Delete(ctx context.Context, shopID, id string) error {
	if _, err := uc.get(ctx, shopID, id); err != nil {
		return err
	}
	refs, err := uc.repo.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrProductInUse
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) get(ctx context.Context, shopID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.ShopID != shopID {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, shopID, categoryID string) error {
	c, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil || c.ShopID != shopID {
		return domain.NewValidationError("category_id", "categoría inexistente")
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		ShopID:      p.ShopID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Barcode:     p.Barcode,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
