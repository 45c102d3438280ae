package inventory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/facturapp-api/internal/application/dto"
	"github.com/jhoicas/facturapp-api/internal/domain"
	"github.com/jhoicas/facturapp-api/internal/domain/entity"
	"github.com/jhoicas/facturapp-api/internal/domain/inventory"
	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

// StockUseCase aplica movimientos de stock de forma transaccional (ENTRY, EXIT, ADJUSTMENT)
// con bloqueo de fila del producto (SELECT FOR UPDATE) y Commit/Rollback.
type StockUseCase struct {
	txRunner StockTxRunner
	movRepo  repository.StockMovementRepository
	now      func() time.Time
	log      zerolog.Logger
	metrics  Metrics
}

// NewStockUseCase construye el caso de uso. now nil usa time.Now.
func NewStockUseCase(
	txRunner StockTxRunner,
	movRepo repository.StockMovementRepository,
	now func() time.Time,
	log zerolog.Logger,
	metrics Metrics,
) *StockUseCase {
	if now == nil {
		now = time.Now
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &StockUseCase{txRunner: txRunner, movRepo: movRepo, now: now, log: log, metrics: metrics}
}

// Apply aplica el lote en orden dentro de una transacción. Si un movimiento falla
// (producto inexistente, de otra tienda o sin stock suficiente) no se aplica ninguno.
func (uc *StockUseCase) Apply(ctx context.Context, shopID string, in dto.ApplyMovementsRequest) (*dto.StockMovementListResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	for i, m := range in.Movements {
		if err := inventory.ValidateMovement(entity.MovementType(m.Type), m.Quantity); err != nil {
			return nil, prefixField(err, i)
		}
	}

	now := uc.now()
	items := make([]dto.StockMovementResponse, 0, len(in.Movements))
	err := uc.txRunner.RunStock(ctx, func(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		products, err := lockProducts(ctx, productRepo, in.Movements)
		if err != nil {
			return err
		}
		for i, m := range in.Movements {
			product := products[m.ProductID]
			if product == nil {
				return fmt.Errorf("movimiento %d: %w", i, domain.ErrNotFound)
			}
			if product.ShopID != shopID {
				return domain.ErrForbidden
			}

			typ := entity.MovementType(m.Type)
			qty, err := inventory.Apply(product.Quantity, typ, m.Quantity)
			if err != nil {
				return fmt.Errorf("movimiento %d (%s): %w", i, product.Name, err)
			}
			if err := productRepo.UpdateQuantity(ctx, product.ID, qty); err != nil {
				return err
			}
			product.Quantity = qty

			mov := &entity.StockMovement{
				ID:          uuid.New().String(),
				ProductID:   product.ID,
				ShopID:      shopID,
				Type:        typ,
				Quantity:    m.Quantity,
				ProductName: product.Name,
				CreatedAt:   now,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
			after := qty
			resp := toMovementResponse(mov)
			resp.QuantityAfter = &after
			items = append(items, resp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		uc.metrics.MovementApplied(it.Type)
	}
	uc.log.Info().Str("shop_id", shopID).Int("movements", len(items)).Msg("movimientos de stock aplicados")
	return &dto.StockMovementListResponse{Items: items}, nil
}

// History movimientos de la tienda, más recientes primero.
func (uc *StockUseCase) History(ctx context.Context, shopID string, page dto.PageRequest) (*dto.StockMovementListResponse, error) {
	page.Normalize()
	list, err := uc.movRepo.ListByShop(ctx, shopID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.StockMovementListResponse{
		Items: items,
		Page:  &dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		ShopID:      m.ShopID,
		Type:        string(m.Type),
		Quantity:    m.Quantity,
		CreatedAt:   m.CreatedAt,
	}
}

// prefixField ubica el error de validación dentro del lote: "quantity" -> "movements[2].quantity".
func prefixField(err error, i int) error {
	ve, ok := err.(*domain.ValidationError)
	if !ok {
		return err
	}
	out := &domain.ValidationError{Fields: make(map[string]string, len(ve.Fields))}
	for k, v := range ve.Fields {
		out.Fields[fmt.Sprintf("movements[%d].%s", i, k)] = v
	}
	return out
}

// lockProducts bloquea (SELECT FOR UPDATE) los productos distintos del lote en orden de ID,
// así dos lotes concurrentes adquieren los bloqueos en el mismo orden. Los inexistentes quedan en nil.
func lockProducts(ctx context.Context, repo repository.ProductRepository, movements []dto.StockMovementRequest) (map[string]*entity.Product, error) {
	ids := make([]string, 0, len(movements))
	for _, m := range movements {
		ids = append(ids, m.ProductID)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	products := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		p, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		products[id] = p
	}
	return products, nil
}
