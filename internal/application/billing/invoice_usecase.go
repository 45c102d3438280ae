package billing

import (
	"context"
	"errors"
	"fmt"
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

// Config parámetros de facturación.
type Config struct {
	DefaultVATRate decimal.Decimal  // tasa inicial de las facturas nuevas (IVA inactivo)
	Now            func() time.Time // nil = time.Now
}

// InvoiceUseCase ciclo de vida de la factura: creación, lectura, guardado con
// sincronización de líneas y eliminación.
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	shopRepo    repository.ShopRepository
	txRunner    InvoiceTxRunner
	ids         *IDGenerator
	overdue     *OverdueUseCase
	cfg         Config
	log         zerolog.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	shopRepo repository.ShopRepository,
	txRunner InvoiceTxRunner,
	ids *IDGenerator,
	overdue *OverdueUseCase,
	cfg Config,
	log zerolog.Logger,
) *InvoiceUseCase {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &InvoiceUseCase{
		invoiceRepo: invoiceRepo,
		shopRepo:    shopRepo,
		txRunner:    txRunner,
		ids:         ids,
		overdue:     overdue,
		cfg:         cfg,
		log:         log,
	}
}

// Create crea una factura vacía del usuario. Si in.ShopID viene informado la
// factura queda asociada a la tienda y copia su nombre y dirección como emisor.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	now := uc.cfg.Now()
	inv := &entity.Invoice{
		Name:           strings.TrimSpace(in.Name),
		VATActive:      false,
		VATRate:        uc.cfg.DefaultVATRate,
		Status:         entity.InvoiceStatusDraft,
		PaidAmount:     decimal.Zero,
		ReceivedAmount: decimal.Zero,
		ChangeGiven:    decimal.Zero,
		UserID:         userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if in.ShopID != "" {
		shop, err := uc.shopRepo.GetByID(ctx, in.ShopID)
		if err != nil {
			return nil, err
		}
		if shop == nil {
			return nil, domain.ErrNotFound
		}
		ok, err := uc.shopRepo.IsMemberOrOwner(ctx, shop.ID, userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrForbidden
		}
		inv.ShopID = shop.ID
		inv.IssuerName = shop.Name
		inv.IssuerAddress = shop.Address
	}

	for attempt := 1; ; attempt++ {
		id, err := uc.ids.Generate(ctx)
		if err != nil {
			return nil, err
		}
		inv.ID = id
		err = uc.invoiceRepo.Create(ctx, inv)
		if err == nil {
			break
		}
		// Otro proceso insertó el mismo id entre la verificación y el INSERT.
		if errors.Is(err, domain.ErrDuplicate) {
			uc.ids.Collision(id, attempt)
			continue
		}
		return nil, err
	}

	uc.log.Info().Str("invoice_id", inv.ID).Str("user_id", userID).Str("shop_id", inv.ShopID).Msg("factura creada")
	return toInvoiceResponse(inv), nil
}

// Get devuelve una factura con líneas y totales.
func (uc *InvoiceUseCase) Get(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if err := authorize(ctx, uc.shopRepo, inv, userID); err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// ListForUser facturas del usuario, más recientes primero. Antes de devolverlas
// aplica la transición de vencidas (la lectura tiene un efecto de escritura).
func (uc *InvoiceUseCase) ListForUser(ctx context.Context, userID string) (*dto.InvoiceListResponse, error) {
	list, err := uc.invoiceRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := uc.overdue.Apply(ctx, list); err != nil {
		return nil, err
	}
	return toInvoiceList(list), nil
}

// ListForShop facturas de una tienda. El acceso a la tienda se valida en el middleware.
func (uc *InvoiceUseCase) ListForShop(ctx context.Context, shopID string) (*dto.InvoiceListResponse, error) {
	list, err := uc.invoiceRepo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if err := uc.overdue.Apply(ctx, list); err != nil {
		return nil, err
	}
	return toInvoiceList(list), nil
}

// Save reemplaza la cabecera y sincroniza las líneas en una sola transacción.
// Los campos de pago no se modifican aquí.
func (uc *InvoiceUseCase) Save(ctx context.Context, userID, id string, in dto.SaveInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := validateSave(in); err != nil {
		return nil, err
	}

	var saved *entity.Invoice
	var changes domainbilling.LineChanges
	err := uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		inv, err := invoiceRepo.LockForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := authorize(ctx, uc.shopRepo, inv, userID); err != nil {
			return err
		}

		inv.Name = strings.TrimSpace(in.Name)
		inv.IssuerName = in.IssuerName
		inv.IssuerAddress = in.IssuerAddress
		inv.ClientName = in.ClientName
		inv.ClientAddress = in.ClientAddress
		inv.InvoiceDate = in.InvoiceDate
		inv.DueDate = in.DueDate
		inv.VATActive = in.VATActive
		inv.VATRate = in.VATRate
		if in.Status != 0 {
			inv.Status = entity.InvoiceStatus(in.Status)
		}
		inv.UpdatedAt = uc.cfg.Now()
		if err := invoiceRepo.UpdateHeader(ctx, inv); err != nil {
			return err
		}

		submitted := make([]entity.InvoiceLine, 0, len(in.Lines))
		for _, l := range in.Lines {
			submitted = append(submitted, entity.InvoiceLine{
				ID:          l.ID,
				InvoiceID:   inv.ID,
				Description: l.Description,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
				ProductID:   l.ProductID,
			})
		}
		changes = domainbilling.DiffLines(inv.Lines, submitted)
		if len(changes.Delete) > 0 {
			if err := invoiceRepo.DeleteLines(ctx, inv.ID, changes.Delete); err != nil {
				return err
			}
		}
		for i := range changes.Update {
			if err := invoiceRepo.UpdateLine(ctx, &changes.Update[i]); err != nil {
				return err
			}
		}
		for i := range changes.Create {
			changes.Create[i].ID = uuid.New().String()
			changes.Create[i].InvoiceID = inv.ID
			if err := invoiceRepo.CreateLine(ctx, &changes.Create[i]); err != nil {
				return err
			}
		}

		saved, err = invoiceRepo.GetByID(ctx, inv.ID)
		if err != nil {
			return err
		}
		if saved == nil {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Debug().
		Str("invoice_id", id).
		Int("lines_deleted", len(changes.Delete)).
		Int("lines_updated", len(changes.Update)).
		Int("lines_created", len(changes.Create)).
		Msg("factura guardada")
	return toInvoiceResponse(saved), nil
}

// Delete elimina la factura con sus líneas y pagos.
func (uc *InvoiceUseCase) Delete(ctx context.Context, userID, id string) error {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if err := authorize(ctx, uc.shopRepo, inv, userID); err != nil {
		return err
	}
	if err := uc.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("invoice_id", id).Msg("factura eliminada")
	return nil
}

// validateSave reglas que las etiquetas del DTO no cubren (decimales).
func validateSave(in dto.SaveInvoiceRequest) error {
	fields := map[string]string{}
	if in.VATRate.IsNegative() || in.VATRate.GreaterThan(decimal.NewFromInt(100)) {
		fields["vat_rate"] = "debe estar entre 0 y 100"
	}
	for i, l := range in.Lines {
		if l.UnitPrice.IsNegative() {
			fields[fmt.Sprintf("lines[%d].unit_price", i)] = "no puede ser negativo"
		}
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
