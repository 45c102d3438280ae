package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Especializaciones: errors.Is funciona tanto con la variable como con su categoría.
	ErrAlreadyPaid  = fmt.Errorf("%w: la factura ya está pagada", ErrConflict)
	ErrProductInUse = fmt.Errorf("%w: el producto está referenciado por facturas o movimientos", ErrConflict)
	ErrOverpayment  = fmt.Errorf("%w: el monto supera el saldo pendiente", ErrInvalidInput)
)

// ValidationError agrupa mensajes por campo. Se compara como ErrInvalidInput.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError crea un ValidationError con un único campo.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
