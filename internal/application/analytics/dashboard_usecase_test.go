package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturapp-api/internal/application/analytics"
	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

type stubAnalytics struct {
	stats     *repository.ShopStats
	daily     []repository.SalesBucket
	monthly   []repository.SalesBucket
	low       []repository.LowStockItem
	err       error
	from, to  time.Time
	threshold int64
}

func (s *stubAnalytics) GetShopStats(_ context.Context, _ string, dayStart, dayEnd time.Time) (*repository.ShopStats, error) {
	return s.stats, s.err
}

func (s *stubAnalytics) GetDailySales(_ context.Context, _ string, from, to time.Time) ([]repository.SalesBucket, error) {
	s.from, s.to = from, to
	return s.daily, s.err
}

func (s *stubAnalytics) GetMonthlySales(_ context.Context, _ string, from, to time.Time) ([]repository.SalesBucket, error) {
	return s.monthly, s.err
}

func (s *stubAnalytics) GetLowStock(_ context.Context, _ string, threshold int64, _ int) ([]repository.LowStockItem, error) {
	s.threshold = threshold
	return s.low, s.err
}

var now = time.Date(2026, 3, 15, 18, 45, 0, 0, time.UTC)

func clock() time.Time { return now }

func TestSalesLast7Days_RellenaDiasSinVentas(t *testing.T) {
	repo := &stubAnalytics{daily: []repository.SalesBucket{
		{Key: "2026-03-10", Total: decimal.NewFromInt(1500)},
		{Key: "2026-03-15", Total: decimal.RequireFromString("250.5")},
	}}
	uc := analytics.NewDashboardUseCase(repo, 5, clock)

	out, err := uc.SalesLast7Days(context.Background(), "s-1")
	require.NoError(t, err)
	require.Len(t, out.Items, 7)

	assert.Equal(t, "2026-03-09", out.Items[0].Period)
	assert.Equal(t, "2026-03-15", out.Items[6].Period)
	assert.Equal(t, "15/03", out.Items[6].Label)
	assert.True(t, out.Items[0].Total.IsZero())
	assert.True(t, out.Items[1].Total.Equal(decimal.NewFromInt(1500)))
	assert.True(t, out.Items[6].Total.Equal(decimal.RequireFromString("250.5")))

	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), repo.from)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), repo.to)
}

func TestSalesLast7Days_VentanaEnLaZonaDelReloj(t *testing.T) {
	plusOne := time.FixedZone("GMT+1", 3600)
	// 00:30 del 16 en GMT+1 sigue siendo el 15 en UTC.
	localNow := time.Date(2026, 3, 16, 0, 30, 0, 0, plusOne)
	repo := &stubAnalytics{daily: []repository.SalesBucket{{Key: "2026-03-16", Total: decimal.NewFromInt(40)}}}
	uc := analytics.NewDashboardUseCase(repo, 5, func() time.Time { return localNow })

	out, err := uc.SalesLast7Days(context.Background(), "s-1")
	require.NoError(t, err)
	require.Len(t, out.Items, 7)
	assert.Equal(t, "2026-03-16", out.Items[6].Period)
	assert.True(t, out.Items[6].Total.Equal(decimal.NewFromInt(40)))

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, plusOne), repo.from)
	assert.Equal(t, plusOne, repo.from.Location(), "el repositorio agrupa en la zona de from")
}

func TestMonthlySales_DoceMesesIncluyendoElActual(t *testing.T) {
	repo := &stubAnalytics{monthly: []repository.SalesBucket{
		{Key: "2025-04", Total: decimal.NewFromInt(10)},
		{Key: "2026-03", Total: decimal.NewFromInt(30)},
	}}
	uc := analytics.NewDashboardUseCase(repo, 5, clock)

	out, err := uc.MonthlySales(context.Background(), "s-1")
	require.NoError(t, err)
	require.Len(t, out.Items, 12)

	assert.Equal(t, "2025-04", out.Items[0].Period)
	assert.Equal(t, "Abril 2025", out.Items[0].Label)
	assert.Equal(t, "2026-03", out.Items[11].Period)
	assert.True(t, out.Items[11].Total.Equal(decimal.NewFromInt(30)))
	assert.True(t, out.Items[5].Total.IsZero())
}

func TestLowStock_UmbralPorDefecto(t *testing.T) {
	repo := &stubAnalytics{low: []repository.LowStockItem{{ProductID: "p-1", Name: "Riz", Quantity: 1}}}
	uc := analytics.NewDashboardUseCase(repo, 5, clock)

	out, err := uc.LowStock(context.Background(), "s-1", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.Threshold)
	assert.Equal(t, int64(5), repo.threshold)
	require.Len(t, out.Items, 1)

	_, err = uc.LowStock(context.Background(), "s-1", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), repo.threshold)
}

func TestOverview_PropagaErrores(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&stubAnalytics{err: errors.New("db caída")}, 5, clock)
	_, err := uc.Overview(context.Background(), "s-1")
	assert.Error(t, err)
}

func TestOverview_ReuneLosCuatroReportes(t *testing.T) {
	repo := &stubAnalytics{stats: &repository.ShopStats{ShopsCount: 2, ProductsCount: 7, StockValue: decimal.RequireFromString("1234.567")}}
	uc := analytics.NewDashboardUseCase(repo, 5, clock).WithCurrency("CFA")

	out, err := uc.Overview(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, 2, out.Stats.ShopsCount)
	assert.Equal(t, "CFA", out.Stats.Currency)
	assert.True(t, out.Stats.StockValue.Equal(decimal.RequireFromString("1234.57")))
	assert.Len(t, out.Last7Days.Items, 7)
	assert.Len(t, out.MonthlySales.Items, 12)
}
