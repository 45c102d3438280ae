package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/shops/:shopId/dashboard/stats.
type DashboardStatsDTO struct {
	ShopsCount          int             `json:"shops_count"`    // tiendas del dueño
	TotalProducts       int             `json:"total_products"` // productos de la tienda
	StockValue          decimal.Decimal `json:"stock_value"`    // Σ precio × cantidad
	TotalSalesToday     decimal.Decimal `json:"total_sales_today"`
	UnpaidInvoicesToday int             `json:"unpaid_invoices_today"`
	Currency            string          `json:"currency,omitempty"`
}

// SalesPointDTO total de un día ("2006-01-02") o de un mes ("2006-01").
type SalesPointDTO struct {
	Period string          `json:"period"`
	Label  string          `json:"label"`
	Total  decimal.Decimal `json:"total"`
}

// SalesSeriesDTO serie completa (sin huecos), del más antiguo al más reciente.
type SalesSeriesDTO struct {
	Items []SalesPointDTO `json:"items"`
}

// LowStockDTO producto con existencia baja.
type LowStockDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
}

// LowStockListDTO listado de existencias bajas.
type LowStockListDTO struct {
	Threshold int64         `json:"threshold"`
	Items     []LowStockDTO `json:"items"`
}

// DashboardDTO las cuatro vistas del dashboard en una sola respuesta.
type DashboardDTO struct {
	Stats        DashboardStatsDTO `json:"stats"`
	Last7Days    SalesSeriesDTO    `json:"last_7_days"`
	MonthlySales SalesSeriesDTO    `json:"monthly_sales"`
	LowStock     LowStockListDTO   `json:"low_stock"`
}
