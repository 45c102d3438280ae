package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus estado de una factura. Los valores numéricos se persisten tal cual.
type InvoiceStatus int

// Estados de factura.
const (
	InvoiceStatusDraft     InvoiceStatus = 1
	InvoiceStatusPending   InvoiceStatus = 2
	InvoiceStatusPaid      InvoiceStatus = 3
	InvoiceStatusCancelled InvoiceStatus = 4
	InvoiceStatusUnpaid    InvoiceStatus = 5
)

func (s InvoiceStatus) String() string {
	switch s {
	case InvoiceStatusDraft:
		return "DRAFT"
	case InvoiceStatusPending:
		return "PENDING"
	case InvoiceStatusPaid:
		return "PAID"
	case InvoiceStatusCancelled:
		return "CANCELLED"
	case InvoiceStatusUnpaid:
		return "UNPAID"
	}
	return "UNKNOWN"
}

// Valid indica si el estado pertenece al conjunto cerrado 1..5.
func (s InvoiceStatus) Valid() bool {
	return s >= InvoiceStatusDraft && s <= InvoiceStatusUnpaid
}

// DateLayout formato de InvoiceDate y DueDate (fechas sin hora).
const DateLayout = "2006-01-02"

// Invoice cabecera de factura.
// ReceivedAmount, ChangeGiven y PaymentMethod reflejan solo el último pago.
type Invoice struct {
	ID             string // 6 caracteres hexadecimales
	Name           string
	IssuerName     string
	IssuerAddress  string
	ClientName     string
	ClientAddress  string
	InvoiceDate    string
	DueDate        string
	VATActive      bool
	VATRate        decimal.Decimal // porcentaje
	Status         InvoiceStatus
	PaidAmount     decimal.Decimal
	ReceivedAmount decimal.Decimal
	ChangeGiven    decimal.Decimal
	PaymentMethod  string
	UserID         string
	ShopID         string // vacío si la factura no pertenece a una tienda
	Lines          []InvoiceLine
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
