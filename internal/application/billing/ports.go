package billing

import (
	"context"

	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

// InvoiceTxRunner ejecuta una función dentro de una transacción de BD con el repositorio
// de facturas atado a esa tx. Si fn devuelve error se hace Rollback.
type InvoiceTxRunner interface {
	RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}

// Metrics señales operativas de facturación. Un valor nil no registra nada.
type Metrics interface {
	PaymentRecorded(method string)
	OverdueMarked(n int)
	InvoiceIDCollision()
}

type noopMetrics struct{}

func (noopMetrics) PaymentRecorded(string) {}
func (noopMetrics) OverdueMarked(int)      {}
func (noopMetrics) InvoiceIDCollision()    {}

func metricsOrNoop(m Metrics) Metrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
