// Package analytics contiene los casos de uso de reportes del dashboard de la tienda.
// Todas las consultas son de solo lectura.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturapp-api/internal/application/dto"
	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

const (
	salesDays      = 7
	salesMonths    = 12
	lowStockLimit  = 50
	dayKeyLayout   = "2006-01-02"
	monthKeyLayout = "2006-01"
)

// DashboardUseCase genera los cuatro reportes del dashboard de una tienda.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo     repository.AnalyticsRepository
	lowStockThreshold int64
	currency          string
	now               func() time.Time
}

// NewDashboardUseCase construye el caso de uso. now nil usa time.Now.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, lowStockThreshold int64, now func() time.Time) *DashboardUseCase {
	if now == nil {
		now = time.Now
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, lowStockThreshold: lowStockThreshold, now: now}
}

// WithCurrency fija el código de moneda que acompaña los montos del resumen.
func (uc *DashboardUseCase) WithCurrency(code string) *DashboardUseCase {
	uc.currency = code
	return uc
}

// Stats resumen: tiendas del dueño, productos, valor del stock, ventas de hoy
// y facturas de hoy aún sin pagar.
func (uc *DashboardUseCase) Stats(ctx context.Context, shopID string) (*dto.DashboardStatsDTO, error) {
	// Hoy: 00:00:00 – 24:00:00 (excluido)
	dayStart := startOfDay(uc.now())
	s, err := uc.analyticsRepo.GetShopStats(ctx, shopID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("dashboard: resumen: %w", err)
	}
	return &dto.DashboardStatsDTO{
		ShopsCount:          s.ShopsCount,
		TotalProducts:       s.ProductsCount,
		StockValue:          s.StockValue.Round(2),
		TotalSalesToday:     s.SalesToday.Round(2),
		UnpaidInvoicesToday: s.UnpaidInvoicesToday,
		Currency:            uc.currency,
	}, nil
}

// SalesLast7Days ventas por día de hoy y los 6 días anteriores, del más antiguo al más reciente.
// Los días sin pagos aparecen con total 0.
func (uc *DashboardUseCase) SalesLast7Days(ctx context.Context, shopID string) (*dto.SalesSeriesDTO, error) {
	today := startOfDay(uc.now())
	from := today.AddDate(0, 0, -(salesDays - 1))
	buckets, err := uc.analyticsRepo.GetDailySales(ctx, shopID, from, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("dashboard: ventas diarias: %w", err)
	}
	totals := indexBuckets(buckets)

	items := make([]dto.SalesPointDTO, 0, salesDays)
	for d := from; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayKeyLayout)
		items = append(items, dto.SalesPointDTO{
			Period: key,
			Label:  d.Format("02/01"),
			Total:  totalOrZero(totals, key),
		})
	}
	return &dto.SalesSeriesDTO{Items: items}, nil
}

// MonthlySales ventas de los últimos 12 meses calendario incluido el actual.
func (uc *DashboardUseCase) MonthlySales(ctx context.Context, shopID string) (*dto.SalesSeriesDTO, error) {
	now := uc.now()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	from := current.AddDate(0, -(salesMonths - 1), 0)
	buckets, err := uc.analyticsRepo.GetMonthlySales(ctx, shopID, from, current.AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("dashboard: ventas mensuales: %w", err)
	}
	totals := indexBuckets(buckets)

	items := make([]dto.SalesPointDTO, 0, salesMonths)
	for m := from; !m.After(current); m = m.AddDate(0, 1, 0) {
		key := m.Format(monthKeyLayout)
		items = append(items, dto.SalesPointDTO{
			Period: key,
			Label:  monthLabel(m),
			Total:  totalOrZero(totals, key),
		})
	}
	return &dto.SalesSeriesDTO{Items: items}, nil
}

// LowStock productos con cantidad ≤ threshold. threshold ≤ 0 usa el umbral configurado.
func (uc *DashboardUseCase) LowStock(ctx context.Context, shopID string, threshold int64) (*dto.LowStockListDTO, error) {
	if threshold <= 0 {
		threshold = uc.lowStockThreshold
	}
	list, err := uc.analyticsRepo.GetLowStock(ctx, shopID, threshold, lowStockLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", err)
	}
	items := make([]dto.LowStockDTO, 0, len(list))
	for _, it := range list {
		items = append(items, dto.LowStockDTO{ProductID: it.ProductID, Name: it.Name, Quantity: it.Quantity})
	}
	return &dto.LowStockListDTO{Threshold: threshold, Items: items}, nil
}

// Overview ejecuta los cuatro reportes en paralelo.
func (uc *DashboardUseCase) Overview(ctx context.Context, shopID string) (*dto.DashboardDTO, error) {
	type statsResult struct {
		v   *dto.DashboardStatsDTO
		err error
	}
	type seriesResult struct {
		v   *dto.SalesSeriesDTO
		err error
	}
	type lowStockResult struct {
		v   *dto.LowStockListDTO
		err error
	}

	statsCh := make(chan statsResult, 1)
	daysCh := make(chan seriesResult, 1)
	monthsCh := make(chan seriesResult, 1)
	lowCh := make(chan lowStockResult, 1)

	go func() {
		v, err := uc.Stats(ctx, shopID)
		statsCh <- statsResult{v, err}
	}()
	go func() {
		v, err := uc.SalesLast7Days(ctx, shopID)
		daysCh <- seriesResult{v, err}
	}()
	go func() {
		v, err := uc.MonthlySales(ctx, shopID)
		monthsCh <- seriesResult{v, err}
	}()
	go func() {
		v, err := uc.LowStock(ctx, shopID, 0)
		lowCh <- lowStockResult{v, err}
	}()

	stats := <-statsCh
	days := <-daysCh
	months := <-monthsCh
	low := <-lowCh

	for _, err := range []error{stats.err, days.err, months.err, low.err} {
		if err != nil {
			return nil, err
		}
	}
	return &dto.DashboardDTO{
		Stats:        *stats.v,
		Last7Days:    *days.v,
		MonthlySales: *months.v,
		LowStock:     *low.v,
	}, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func indexBuckets(buckets []repository.SalesBucket) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(buckets))
	for _, b := range buckets {
		m[b.Key] = m[b.Key].Add(b.Total)
	}
	return m
}

func totalOrZero(m map[string]decimal.Decimal, key string) decimal.Decimal {
	if v, ok := m[key]; ok {
		return v.Round(2)
	}
	return decimal.Zero
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
