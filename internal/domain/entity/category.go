package entity

import "time"

// Category categoría de productos dentro de una tienda.
type Category struct {
	ID        string
	ShopID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
