package inventory_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturapp-api/internal/application/dto"
	"github.com/jhoicas/facturapp-api/internal/application/inventory"
	"github.com/jhoicas/facturapp-api/internal/domain"
	"github.com/jhoicas/facturapp-api/internal/domain/entity"
	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

// memStock productos y libro de movimientos en memoria.
type memStock struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	locked    []string
}

func newMemStock(products ...*entity.Product) *memStock {
	s := &memStock{products: map[string]*entity.Product{}}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

// memProducts expone memStock como ProductRepository (solo lo que usa el libro).
type memProducts struct {
	repository.ProductRepository
	s *memStock
}

// memMovements expone memStock como StockMovementRepository.
type memMovements struct{ s *memStock }

func (r memProducts) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	r.s.locked = append(r.s.locked, id)
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r memProducts) UpdateQuantity(_ context.Context, id string, qty int64) error {
	r.s.products[id].Quantity = qty
	return nil
}

func (r memMovements) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}

func (r memMovements) ListByShop(_ context.Context, shopID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ShopID == shopID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// RunStock restaura cantidades y movimientos si fn falla.
func (s *memStock) RunStock(_ context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	qty := map[string]int64{}
	for id, p := range s.products {
		qty[id] = p.Quantity
	}
	movs := len(s.movements)
	if err := fn(memProducts{s: s}, memMovements{s: s}); err != nil {
		for id, q := range qty {
			s.products[id].Quantity = q
		}
		s.movements = s.movements[:movs]
		return err
	}
	return nil
}

type movementCounter map[string]int

func (m movementCounter) MovementApplied(t string) { m[t]++ }

func newStockUseCase(store *memStock, metrics inventory.Metrics) *inventory.StockUseCase {
	now := func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return inventory.NewStockUseCase(store, memMovements{s: store}, now, zerolog.Nop(), metrics)
}

func TestApply_LoteEntradaSalida(t *testing.T) {
	store := newMemStock(&entity.Product{ID: "p1", ShopID: "s1", Name: "Arroz", Quantity: 10})
	metrics := movementCounter{}
	uc := newStockUseCase(store, metrics)

	out, err := uc.Apply(context.Background(), "s1", dto.ApplyMovementsRequest{Movements: []dto.StockMovementRequest{
		{ProductID: "p1", Type: "ENTRY", Quantity: 5},
		{ProductID: "p1", Type: "EXIT", Quantity: 3},
	}})
	require.NoError(t, err)

	assert.Equal(t, int64(12), store.products["p1"].Quantity)
	require.Len(t, out.Items, 2)
	assert.Equal(t, int64(15), *out.Items[0].QuantityAfter)
	assert.Equal(t, int64(12), *out.Items[1].QuantityAfter)
	assert.Equal(t, "Arroz", out.Items[1].ProductName)
	assert.Len(t, store.movements, 2)
	assert.Equal(t, 1, metrics["ENTRY"])
	assert.Equal(t, 1, metrics["EXIT"])
}

func TestApply_AjusteFijaCantidad(t *testing.T) {
	store := newMemStock(&entity.Product{ID: "p1", ShopID: "s1", Quantity: 42})
	uc := newStockUseCase(store, nil)

	_, err := uc.Apply(context.Background(), "s1", dto.ApplyMovementsRequest{Movements: []dto.StockMovementRequest{
		{ProductID: "p1", Type: "ADJUSTMENT", Quantity: 7},
	}})
	require.NoError(t, err)
	assert.Equal(t, int64(7), store.products["p1"].Quantity)
}

func TestApply_FalloParcialRevierteElLote(t *testing.T) {
	store := newMemStock(
		&entity.Product{ID: "p1", ShopID: "s1", Quantity: 10},
		&entity.Product{ID: "p2", ShopID: "s1", Quantity: 1},
	)
	uc := newStockUseCase(store, nil)

	_, err := uc.Apply(context.Background(), "s1", dto.ApplyMovementsRequest{Movements: []dto.StockMovementRequest{
		{ProductID: "p1", Type: "ENTRY", Quantity: 5},
		{ProductID: "p2", Type: "EXIT", Quantity: 2},
	}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), store.products["p1"].Quantity)
	assert.Equal(t, int64(1), store.products["p2"].Quantity)
	assert.Empty(t, store.movements)
}

func TestApply_Rechazos(t *testing.T) {
	store := newMemStock(&entity.Product{ID: "p1", ShopID: "s1", Quantity: 10})
	uc := newStockUseCase(store, nil)
	ctx := context.Background()

	_, err := uc.Apply(ctx, "s1", dto.ApplyMovementsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Apply(ctx, "s1", dto.ApplyMovementsRequest{Movements: []dto.StockMovementRequest{
		{ProductID: "p1", Type: "ENTRY", Quantity: 0},
	}})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "movements[0].quantity")

	_, err = uc.Apply(ctx, "s1", dto.ApplyMovementsRequest{Movements: []dto.StockMovementRequest{
		{ProductID: "p1", Type: "TRANSFER", Quantity: 1},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Apply(ctx, "s1", dto.ApplyMovementsRequest{Movements: []dto.StockMovementRequest{
		{ProductID: "nope", Type: "ENTRY", Quantity: 1},
	}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Apply(ctx, "s2", dto.ApplyMovementsRequest{Movements: []dto.StockMovementRequest{
		{ProductID: "p1", Type: "ENTRY", Quantity: 1},
	}})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.Equal(t, int64(10), store.products["p1"].Quantity)
}

func TestHistory_Paginado(t *testing.T) {
	store := newMemStock(&entity.Product{ID: "p1", ShopID: "s1", Quantity: 0})
	uc := newStockUseCase(store, nil)
	for i := 0; i < 3; i++ {
		_, err := uc.Apply(context.Background(), "s1", dto.ApplyMovementsRequest{Movements: []dto.StockMovementRequest{
			{ProductID: "p1", Type: "ENTRY", Quantity: 1},
		}})
		require.NoError(t, err)
	}

	out, err := uc.History(context.Background(), "s1", dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 2, out.Page.Limit)

	out, err = uc.History(context.Background(), "s1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 3)
	assert.Equal(t, 20, out.Page.Limit)
}

func TestApply_BloqueaProductosEnOrdenDeID(t *testing.T) {
	store := newMemStock(
		&entity.Product{ID: "p1", ShopID: "s1", Name: "Arroz", Quantity: 10},
		&entity.Product{ID: "p2", ShopID: "s1", Name: "Aceite", Quantity: 10},
		&entity.Product{ID: "p3", ShopID: "s1", Name: "Azúcar", Quantity: 10},
	)
	uc := newStockUseCase(store, nil)

	out, err := uc.Apply(context.Background(), "s1", dto.ApplyMovementsRequest{Movements: []dto.StockMovementRequest{
		{ProductID: "p3", Type: "EXIT", Quantity: 2},
		{ProductID: "p1", Type: "ENTRY", Quantity: 1},
		{ProductID: "p3", Type: "EXIT", Quantity: 3},
		{ProductID: "p2", Type: "ADJUSTMENT", Quantity: 4},
	}})
	require.NoError(t, err)

	assert.Equal(t, []string{"p1", "p2", "p3"}, store.locked, "un bloqueo por producto, en orden de ID")
	require.Len(t, out.Items, 4)
	assert.Equal(t, "p3", out.Items[0].ProductID, "los movimientos se aplican en el orden del lote")
	assert.Equal(t, int64(8), *out.Items[0].QuantityAfter)
	assert.Equal(t, int64(5), *out.Items[2].QuantityAfter)
	assert.Equal(t, int64(5), store.products["p3"].Quantity)
	assert.Equal(t, int64(4), store.products["p2"].Quantity)
}
