package entity

import "time"

// MovementType tipo de movimiento del libro de stock.
type MovementType string

// Tipos de movimiento.
const (
	MovementEntry      MovementType = "ENTRY"      // suma la cantidad
	MovementExit       MovementType = "EXIT"       // resta la cantidad
	MovementAdjustment MovementType = "ADJUSTMENT" // fija la cantidad absoluta
)

// Valid indica si el tipo es uno de los conocidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementEntry, MovementExit, MovementAdjustment:
		return true
	}
	return false
}

// StockMovement registro inmutable del libro de stock.
// Quantity es siempre una magnitud no negativa; el signo lo da Type.
type StockMovement struct {
	ID          string
	ProductID   string
	ShopID      string
	Type        MovementType
	Quantity    int64
	ProductName string // solo lectura (historial)
	CreatedAt   time.Time
}
