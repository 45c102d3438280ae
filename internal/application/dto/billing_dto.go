package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/invoices y /api/shops/:shopId/invoices.
type CreateInvoiceRequest struct {
	Name   string `json:"name" validate:"required,max=60"`
	ShopID string `json:"shop_id,omitempty"`
}

// InvoiceLineRequest línea enviada al guardar. Sin ID se crea una línea nueva.
type InvoiceLineRequest struct {
	ID          string          `json:"id,omitempty"`
	Description string          `json:"description" validate:"max=255"`
	Quantity    int64           `json:"quantity" validate:"gte=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ProductID   string          `json:"product_id,omitempty"`
}

// SaveInvoiceRequest body para PUT /api/invoices/:id. Reemplaza la factura completa.
type SaveInvoiceRequest struct {
	Name          string               `json:"name" validate:"required,max=60"`
	IssuerName    string               `json:"issuer_name" validate:"max=120"`
	IssuerAddress string               `json:"issuer_address" validate:"max=255"`
	ClientName    string               `json:"client_name" validate:"max=120"`
	ClientAddress string               `json:"client_address" validate:"max=255"`
	InvoiceDate   string               `json:"invoice_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate       string               `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	VATActive     bool                 `json:"vat_active"`
	VATRate       decimal.Decimal      `json:"vat_rate"`
	Status        int                  `json:"status" validate:"omitempty,min=1,max=5"`
	Lines         []InvoiceLineRequest `json:"lines" validate:"max=500,dive"`
}

// InvoiceLineResponse línea en respuestas.
type InvoiceLineResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	ProductID   string          `json:"product_id,omitempty"`
}

// TotalsResponse totales a la precisión de la moneda.
type TotalsResponse struct {
	TotalHT  decimal.Decimal `json:"total_ht"`
	TotalVAT decimal.Decimal `json:"total_vat"`
	TotalTTC decimal.Decimal `json:"total_ttc"`
}

// InvoiceResponse factura con líneas y totales.
type InvoiceResponse struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	IssuerName     string                `json:"issuer_name"`
	IssuerAddress  string                `json:"issuer_address"`
	ClientName     string                `json:"client_name"`
	ClientAddress  string                `json:"client_address"`
	InvoiceDate    string                `json:"invoice_date"`
	DueDate        string                `json:"due_date"`
	VATActive      bool                  `json:"vat_active"`
	VATRate        decimal.Decimal       `json:"vat_rate"`
	Status         int                   `json:"status"`
	StatusLabel    string                `json:"status_label"`
	PaidAmount     decimal.Decimal       `json:"paid_amount"`
	ReceivedAmount decimal.Decimal       `json:"received_amount"`
	ChangeGiven    decimal.Decimal       `json:"change_given"`
	PaymentMethod  string                `json:"payment_method"`
	Remaining      decimal.Decimal       `json:"remaining"`
	UserID         string                `json:"user_id"`
	ShopID         string                `json:"shop_id,omitempty"`
	Lines          []InvoiceLineResponse `json:"lines"`
	Totals         TotalsResponse        `json:"totals"`
	CreatedAt      time.Time             `json:"created_at"`
}

// InvoiceListResponse listado de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
}

// RecordPaymentRequest body para POST /api/invoices/:id/payments.
// Con amount en cero y received_amount informado se aplica como máximo el saldo
// y el excedente se devuelve como cambio.
type RecordPaymentRequest struct {
	Amount         decimal.Decimal  `json:"amount"`
	Method         string           `json:"method" validate:"required,max=50"`
	ReceivedAmount *decimal.Decimal `json:"received_amount,omitempty"`
	ChangeGiven    *decimal.Decimal `json:"change_given,omitempty"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID             string          `json:"id"`
	InvoiceID      string          `json:"invoice_id"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	ReceivedAmount decimal.Decimal `json:"received_amount"`
	ChangeGiven    decimal.Decimal `json:"change_given"`
	CreatedAt      time.Time       `json:"created_at"`
}

// RecordPaymentResponse pago registrado y factura actualizada.
type RecordPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Invoice InvoiceResponse `json:"invoice"`
}

// PaymentListResponse historial de pagos de una factura.
type PaymentListResponse struct {
	Items []PaymentResponse `json:"items"`
}

// ReconcileResponse resultado de la transición de vencidas.
type ReconcileResponse struct {
	Updated int64 `json:"updated"`
}
