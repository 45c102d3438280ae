package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturapp-api/internal/application/dto"
	"github.com/jhoicas/facturapp-api/internal/domain"
	domainbilling "github.com/jhoicas/facturapp-api/internal/domain/billing"
	"github.com/jhoicas/facturapp-api/internal/domain/entity"
	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

// PaymentUseCase registra pagos y mantiene el estado financiero de la factura.
type PaymentUseCase struct {
	invoiceRepo repository.InvoiceRepository
	shopRepo    repository.ShopRepository
	txRunner    InvoiceTxRunner
	now         func() time.Time
	log         zerolog.Logger
	metrics     Metrics
}

// NewPaymentUseCase construye el caso de uso. now nil usa time.Now.
func NewPaymentUseCase(
	invoiceRepo repository.InvoiceRepository,
	shopRepo repository.ShopRepository,
	txRunner InvoiceTxRunner,
	now func() time.Time,
	log zerolog.Logger,
	metrics Metrics,
) *PaymentUseCase {
	if now == nil {
		now = time.Now
	}
	return &PaymentUseCase{
		invoiceRepo: invoiceRepo,
		shopRepo:    shopRepo,
		txRunner:    txRunner,
		now:         now,
		log:         log,
		metrics:     metricsOrNoop(metrics),
	}
}

// RecordPayment agrega un pago y actualiza estado, pagado acumulado y los datos
// del último pago, todo en la misma transacción. La fila de la factura queda
// bloqueada (SELECT ... FOR UPDATE) para que dos pagos simultáneos no lean el
// mismo acumulado.
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, userID, invoiceID string, in dto.RecordPaymentRequest) (*dto.RecordPaymentResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	method := strings.TrimSpace(in.Method)

	var out *dto.RecordPaymentResponse
	err := uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		inv, err := invoiceRepo.LockForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := authorize(ctx, uc.shopRepo, inv, userID); err != nil {
			return err
		}

		prior, err := invoiceRepo.ListPayments(ctx, inv.ID)
		if err != nil {
			return err
		}
		priorPaid := decimal.Zero
		for _, p := range prior {
			priorPaid = priorPaid.Add(p.Amount)
		}

		due := domainbilling.InvoiceTotals(inv).Due()
		s, err := domainbilling.Settle(due, priorPaid, domainbilling.PaymentRequest{
			Amount:   in.Amount,
			Received: in.ReceivedAmount,
			Change:   in.ChangeGiven,
		})
		if err != nil {
			return err
		}

		now := uc.now()
		payment := &entity.InvoicePayment{
			ID:             uuid.New().String(),
			InvoiceID:      inv.ID,
			Amount:         s.Amount,
			Method:         method,
			ReceivedAmount: s.Received,
			ChangeGiven:    s.Change,
			CreatedAt:      now,
		}
		if err := invoiceRepo.CreatePayment(ctx, payment); err != nil {
			return err
		}

		inv.Status = s.Status
		inv.PaidAmount = s.PaidAfter
		inv.ReceivedAmount = s.Received
		inv.ChangeGiven = s.Change
		inv.PaymentMethod = method
		inv.UpdatedAt = now
		if err := invoiceRepo.UpdatePaymentSnapshot(ctx, inv); err != nil {
			return err
		}

		out = &dto.RecordPaymentResponse{
			Payment: toPaymentResponse(payment),
			Invoice: *toInvoiceResponse(inv),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.PaymentRecorded(method)
	uc.log.Info().
		Str("invoice_id", invoiceID).
		Str("amount", out.Payment.Amount.String()).
		Str("method", method).
		Str("status", entity.InvoiceStatus(out.Invoice.Status).String()).
		Msg("pago registrado")
	return out, nil
}

// ListPayments historial de pagos de la factura, en orden de registro.
func (uc *PaymentUseCase) ListPayments(ctx context.Context, userID, invoiceID string) (*dto.PaymentListResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if err := authorize(ctx, uc.shopRepo, inv, userID); err != nil {
		return nil, err
	}
	list, err := uc.invoiceRepo.ListPayments(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toPaymentResponse(p))
	}
	return &dto.PaymentListResponse{Items: items}, nil
}
