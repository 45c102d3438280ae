package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de una tienda.
// Quantity solo cambia por movimientos de stock o por edición directa.
type Product struct {
	ID          string
	ShopID      string
	CategoryID  string
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int64
	Barcode     string // opcional, usado para escanear en facturación
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockValue devuelve precio × cantidad.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Quantity))
}
