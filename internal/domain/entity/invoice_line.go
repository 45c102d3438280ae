package entity

import "github.com/shopspring/decimal"

// InvoiceLine línea de factura. ProductID es opcional.
type InvoiceLine struct {
	ID          string
	InvoiceID   string
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	ProductID   string
}

// Amount devuelve cantidad × precio unitario.
func (l InvoiceLine) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}
