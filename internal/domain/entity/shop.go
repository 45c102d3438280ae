package entity

import "time"

// Shop representa una tienda: tiene un único dueño y varios miembros.
// Es dueña de facturas, productos y categorías (se eliminan en cascada con ella).
type Shop struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Ninea     string // identificador fiscal (NINEA)
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
