package billing

import (
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog"

	domainbilling "github.com/jhoicas/facturapp-api/internal/domain/billing"
	"github.com/jhoicas/facturapp-api/internal/domain/entity"
	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

// OverdueUseCase transición Pending → Unpaid de facturas vencidas.
// Se aplica en cada listado y también de forma explícita (comando reconcile-overdue).
type OverdueUseCase struct {
	invoiceRepo repository.InvoiceRepository
	now         func() time.Time
	log         zerolog.Logger
	metrics     Metrics
}

// NewOverdueUseCase construye el caso de uso. now nil usa time.Now.
func NewOverdueUseCase(invoiceRepo repository.InvoiceRepository, now func() time.Time, log zerolog.Logger, metrics Metrics) *OverdueUseCase {
	if now == nil {
		now = time.Now
	}
	return &OverdueUseCase{invoiceRepo: invoiceRepo, now: now, log: log, metrics: metricsOrNoop(metrics)}
}

// Apply marca como Unpaid en el almacén las facturas vencidas del listado. En memoria
// solo cambian las que el almacén actualizó; las demás se releen (un pago concurrente
// pudo cerrarlas).
func (uc *OverdueUseCase) Apply(ctx context.Context, invoices []*entity.Invoice) error {
	now := uc.now()
	ids := domainbilling.OverdueIDs(invoices, now)
	if len(ids) == 0 {
		return nil
	}
	updated, err := uc.invoiceRepo.MarkUnpaid(ctx, ids)
	if err != nil {
		return err
	}
	var marked []*entity.Invoice
	for _, inv := range invoices {
		switch {
		case slices.Contains(updated, inv.ID):
			marked = append(marked, inv)
		case slices.Contains(ids, inv.ID):
			fresh, err := uc.invoiceRepo.GetByID(ctx, inv.ID)
			if err != nil {
				return err
			}
			if fresh != nil {
				*inv = *fresh
			}
		}
	}
	domainbilling.ReconcileOverdue(marked, now)
	uc.metrics.OverdueMarked(len(updated))
	if len(updated) > 0 {
		uc.log.Info().Int("updated", len(updated)).Strs("invoice_ids", updated).Msg("facturas vencidas marcadas como impagadas")
	}
	return nil
}

// ReconcileAll recorre todas las facturas Pending. Es idempotente.
func (uc *OverdueUseCase) ReconcileAll(ctx context.Context) (int64, error) {
	pending, err := uc.invoiceRepo.ListByStatus(ctx, entity.InvoiceStatusPending)
	if err != nil {
		return 0, err
	}
	ids := domainbilling.OverdueIDs(pending, uc.now())
	if len(ids) == 0 {
		return 0, nil
	}
	updated, err := uc.invoiceRepo.MarkUnpaid(ctx, ids)
	if err != nil {
		return 0, err
	}
	uc.metrics.OverdueMarked(len(updated))
	uc.log.Info().Int("updated", len(updated)).Msg("reconciliación de vencidas completada")
	return int64(len(updated)), nil
}
