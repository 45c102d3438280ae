package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ShopStats resultado crudo de la consulta de resumen de una tienda.
type ShopStats struct {
	ShopsCount          int
	ProductsCount       int
	StockValue          decimal.Decimal // Σ precio × cantidad
	SalesToday          decimal.Decimal // Σ pagos registrados hoy
	UnpaidInvoicesToday int             // facturas creadas hoy en Pending o Unpaid
}

// SalesBucket total de pagos agrupado por día o mes. Key es "2006-01-02" o "2006-01".
type SalesBucket struct {
	Key   string
	Total decimal.Decimal
}

// LowStockItem producto con existencia baja.
type LowStockItem struct {
	ProductID string
	Name      string
	Quantity  int64
}

// AnalyticsRepository define las consultas de lectura del dashboard.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetShopStats usa COALESCE para devolver cero cuando no hay datos.
	GetShopStats(ctx context.Context, shopID string, dayStart, dayEnd time.Time) (*ShopStats, error)

	// GetDailySales agrupa pagos por día en [from, to). Los días sin pagos no aparecen.
	GetDailySales(ctx context.Context, shopID string, from, to time.Time) ([]SalesBucket, error)

	// GetMonthlySales agrupa pagos por mes en [from, to).
	GetMonthlySales(ctx context.Context, shopID string, from, to time.Time) ([]SalesBucket, error)

	// GetLowStock productos con cantidad ≤ threshold, menor existencia primero.
	GetLowStock(ctx context.Context, shopID string, threshold int64, limit int) ([]LowStockItem, error)
}
