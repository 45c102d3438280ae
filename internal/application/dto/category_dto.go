package dto

// CategoryRequest cuerpo para crear o renombrar una categoría.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID     string `json:"id"`
	ShopID string `json:"shop_id"`
	Name   string `json:"name"`
}

// CategoryListResponse categorías de una tienda.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}
