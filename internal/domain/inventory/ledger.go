// Package inventory reglas puras del libro de stock.
package inventory

import (
	"github.com/jhoicas/facturapp-api/internal/domain"
	"github.com/jhoicas/facturapp-api/internal/domain/entity"
)

// ValidateMovement ENTRY y EXIT exigen cantidad > 0; ADJUSTMENT acepta 0.
func ValidateMovement(t entity.MovementType, qty int64) error {
	if !t.Valid() {
		return domain.NewValidationError("type", "tipo de movimiento inválido (ENTRY, EXIT, ADJUSTMENT)")
	}
	if qty < 0 || (qty == 0 && t != entity.MovementAdjustment) {
		return domain.NewValidationError("quantity", "la cantidad debe ser mayor que cero")
	}
	return nil
}

// Apply devuelve la nueva cantidad en existencia tras aplicar el movimiento.
// ENTRY suma, EXIT resta y ADJUSTMENT fija el valor absoluto.
// Una salida que dejaría la existencia en negativo falla con ErrInsufficientStock.
func Apply(current int64, t entity.MovementType, qty int64) (int64, error) {
	if err := ValidateMovement(t, qty); err != nil {
		return current, err
	}
	switch t {
	case entity.MovementEntry:
		return current + qty, nil
	case entity.MovementExit:
		if qty > current {
			return current, domain.ErrInsufficientStock
		}
		return current - qty, nil
	default:
		return qty, nil
	}
}
