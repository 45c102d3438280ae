package dto

import "time"

// StockMovementRequest un movimiento dentro del lote.
type StockMovementRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=ENTRY EXIT ADJUSTMENT"`
	Quantity  int64  `json:"quantity" validate:"gte=0"`
}

// ApplyMovementsRequest lote de movimientos (todo o nada).
type ApplyMovementsRequest struct {
	Movements []StockMovementRequest `json:"movements" validate:"required,min=1,max=200,dive"`
}

// StockMovementResponse movimiento registrado.
type StockMovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name,omitempty"`
	ShopID        string    `json:"shop_id"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	QuantityAfter *int64    `json:"quantity_after,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// StockMovementListResponse movimientos (lote aplicado o historial).
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  *PageResponse           `json:"page,omitempty"`
}
