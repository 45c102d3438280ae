package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/facturapp-api/internal/domain/entity"
	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de la tienda.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetShopStats resumen de la tienda. Los pagos cuentan por su fecha de registro en [dayStart, dayEnd).
func (r *AnalyticsRepo) GetShopStats(ctx context.Context, shopID string, dayStart, dayEnd time.Time) (*repository.ShopStats, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM shops o
	      WHERE o.owner_id = (SELECT owner_id FROM shops WHERE id = $1))               AS shops_count,
	    (SELECT COUNT(*) FROM products WHERE shop_id = $1)                              AS products_count,
	    (SELECT COALESCE(SUM(price * quantity), 0) FROM products WHERE shop_id = $1)    AS stock_value,
	    (SELECT COALESCE(SUM(p.amount), 0)
	       FROM invoice_payments p
	       JOIN invoices i ON i.id = p.invoice_id
	      WHERE i.shop_id = $1 AND p.created_at >= $2 AND p.created_at < $3)            AS sales_today,
	    (SELECT COUNT(*) FROM invoices
	      WHERE shop_id = $1 AND status IN ($4, $5)
	        AND created_at >= $2 AND created_at < $3)                                   AS unpaid_today`

	var s repository.ShopStats
	err := r.q.QueryRow(ctx, query, shopID, dayStart, dayEnd,
		int16(entity.InvoiceStatusPending), int16(entity.InvoiceStatusUnpaid),
	).Scan(&s.ShopsCount, &s.ProductsCount, &s.StockValue, &s.SalesToday, &s.UnpaidInvoicesToday)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetShopStats: %w", err)
	}
	return &s, nil
}

// GetDailySales Σ pagos por día en [from, to).
func (r *AnalyticsRepo) GetDailySales(ctx context.Context, shopID string, from, to time.Time) ([]repository.SalesBucket, error) {
	return r.salesBuckets(ctx, "analytics.GetDailySales", "YYYY-MM-DD", shopID, from, to)
}

// GetMonthlySales Σ pagos por mes en [from, to).
func (r *AnalyticsRepo) GetMonthlySales(ctx context.Context, shopID string, from, to time.Time) ([]repository.SalesBucket, error) {
	return r.salesBuckets(ctx, "analytics.GetMonthlySales", "YYYY-MM", shopID, from, to)
}

// Las claves se calculan en la zona de from, no en la TimeZone de la sesión,
// para coincidir con la serie que arma el caso de uso.
func (r *AnalyticsRepo) salesBuckets(ctx context.Context, op, layout, shopID string, from, to time.Time) ([]repository.SalesBucket, error) {
	const query = `
	SELECT to_char(p.created_at AT TIME ZONE $5::%s, $4) AS bucket, COALESCE(SUM(p.amount), 0) AS total
	FROM invoice_payments p
	JOIN invoices i ON i.id = p.invoice_id
	WHERE i.shop_id = $1 AND p.created_at >= $2 AND p.created_at < $3
	GROUP BY bucket
	ORDER BY bucket`

	zone, cast := bucketZone(from)
	rows, err := r.q.Query(ctx, fmt.Sprintf(query, cast), shopID, from, to, layout, zone)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []repository.SalesBucket
	for rows.Next() {
		var b repository.SalesBucket
		if err := rows.Scan(&b.Key, &b.Total); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetLowStock productos con cantidad ≤ threshold, menor existencia primero.
func (r *AnalyticsRepo) GetLowStock(ctx context.Context, shopID string, threshold int64, limit int) ([]repository.LowStockItem, error) {
	const query = `
	SELECT id, name, quantity
	FROM products
	WHERE shop_id = $1 AND quantity <= $2
	ORDER BY quantity, name
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, shopID, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetLowStock: %w", err)
	}
	defer rows.Close()

	var out []repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Quantity); err != nil {
			return nil, fmt.Errorf("analytics.GetLowStock scan: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// bucketZone argumento de AT TIME ZONE para la zona de t: el nombre IANA si
// Postgres puede resolverlo, si no el desfase fijo de t como intervalo.
func bucketZone(t time.Time) (any, string) {
	if name := t.Location().String(); name != "Local" {
		if _, err := time.LoadLocation(name); err == nil {
			return name, "text"
		}
	}
	_, offset := t.Zone()
	return time.Duration(offset) * time.Second, "interval"
}
