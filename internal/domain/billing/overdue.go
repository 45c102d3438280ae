package billing

import (
	"time"

	"github.com/jhoicas/facturapp-api/internal/domain/entity"
)

// IsOverdue una factura Pending vence cuando su fecha de vencimiento es
// estrictamente anterior a la fecha de hoy. Fechas vacías o inválidas nunca vencen.
func IsOverdue(inv *entity.Invoice, now time.Time) bool {
	if inv == nil || inv.Status != entity.InvoiceStatusPending || inv.DueDate == "" {
		return false
	}
	due, err := time.ParseInLocation(entity.DateLayout, inv.DueDate, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return due.Before(today)
}

// OverdueIDs IDs de las facturas vencidas, sin modificarlas.
func OverdueIDs(invoices []*entity.Invoice, now time.Time) []string {
	var ids []string
	for _, inv := range invoices {
		if IsOverdue(inv, now) {
			ids = append(ids, inv.ID)
		}
	}
	return ids
}

// ReconcileOverdue pasa a Unpaid las facturas vencidas (en memoria) y devuelve sus IDs.
func ReconcileOverdue(invoices []*entity.Invoice, now time.Time) []string {
	var ids []string
	for _, inv := range invoices {
		if IsOverdue(inv, now) {
			inv.Status = entity.InvoiceStatusUnpaid
			ids = append(ids, inv.ID)
		}
	}
	return ids
}
