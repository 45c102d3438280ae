package repository

import (
	"context"

	"github.com/jhoicas/facturapp-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice, líneas y pagos.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	Exists(ctx context.Context, id string) (bool, error)
	// GetByID devuelve la cabecera con sus líneas; nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// LockForUpdate igual que GetByID pero bloquea la fila de la cabecera. Solo dentro de una transacción.
	LockForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	// UpdateHeader actualiza los campos descriptivos y el estado (no toca los campos de pago).
	UpdateHeader(ctx context.Context, invoice *entity.Invoice) error
	// UpdatePaymentSnapshot guarda estado, pagado acumulado y los datos del último pago.
	UpdatePaymentSnapshot(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id string) error

	ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error)
	ListByShop(ctx context.Context, shopID string) ([]*entity.Invoice, error)
	ListByStatus(ctx context.Context, status entity.InvoiceStatus) ([]*entity.Invoice, error)
	// MarkUnpaid pasa a Unpaid las facturas indicadas que sigan en Pending. Devuelve los IDs actualizados.
	MarkUnpaid(ctx context.Context, ids []string) ([]string, error)

	// DeleteLines borra en lote (id = ANY($2)) las líneas de la factura.
	DeleteLines(ctx context.Context, invoiceID string, ids []string) error
	UpdateLine(ctx context.Context, line *entity.InvoiceLine) error
	CreateLine(ctx context.Context, line *entity.InvoiceLine) error

	CreatePayment(ctx context.Context, p *entity.InvoicePayment) error
	ListPayments(ctx context.Context, invoiceID string) ([]*entity.InvoicePayment, error)
}
