package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=1000"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity" validate:"gte=0"`
	CategoryID  string          `json:"category_id" validate:"required"`
	Barcode     string          `json:"barcode" validate:"max=64"`
	ImageURL    string          `json:"image_url" validate:"omitempty,url"`
}

// UpdateProductRequest entrada para actualizar un producto. La cantidad editada
// directamente reemplaza la existencia actual.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int64           `json:"quantity" validate:"omitempty,gte=0"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,min=1"`
	Barcode     *string          `json:"barcode" validate:"omitempty,max=64"`
	ImageURL    *string          `json:"image_url" validate:"omitempty,url"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	ShopID      string          `json:"shop_id"`
	CategoryID  string          `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	Barcode     string          `json:"barcode,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
