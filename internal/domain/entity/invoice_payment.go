package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago ofrecidos en caja (texto libre permitido).
const (
	PaymentMethodCash        = "espèces"
	PaymentMethodWave        = "wave"
	PaymentMethodOrangeMoney = "orange money"
	PaymentMethodPaypal      = "paypal"
	PaymentMethodCard        = "carte bancaire"
)

// InvoicePayment pago aplicado a una factura. Solo se agregan, nunca se modifican.
type InvoicePayment struct {
	ID             string
	InvoiceID      string
	Amount         decimal.Decimal
	Method         string
	ReceivedAmount decimal.Decimal
	ChangeGiven    decimal.Decimal
	CreatedAt      time.Time
}
