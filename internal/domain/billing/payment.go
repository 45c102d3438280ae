package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturapp-api/internal/domain"
	"github.com/jhoicas/facturapp-api/internal/domain/entity"
)

// DeriveStatus estado según lo pagado acumulado:
// pagado ≤ 0 → Unpaid; pagado ≥ total → Paid; en otro caso Pending.
func DeriveStatus(paid, due decimal.Decimal) entity.InvoiceStatus {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return entity.InvoiceStatusUnpaid
	case paid.GreaterThanOrEqual(due):
		return entity.InvoiceStatusPaid
	default:
		return entity.InvoiceStatusPending
	}
}

// SplitTender reparte lo recibido en caja: se aplica como máximo el saldo pendiente
// y el excedente se devuelve como cambio.
func SplitTender(remaining, received decimal.Decimal) (amount, change decimal.Decimal) {
	if received.GreaterThan(remaining) {
		return remaining, received.Sub(remaining)
	}
	return received, decimal.Zero
}

// PaymentRequest datos de un pago. Received y Change son opcionales.
// Con Amount en cero y Received informado se aplica SplitTender.
type PaymentRequest struct {
	Amount   decimal.Decimal
	Received *decimal.Decimal
	Change   *decimal.Decimal
}

// Settlement resultado de liquidar un pago contra una factura.
type Settlement struct {
	Amount    decimal.Decimal
	Received  decimal.Decimal
	Change    decimal.Decimal
	PaidAfter decimal.Decimal
	Status    entity.InvoiceStatus
}

// Settle valida un pago nuevo contra el total exigible y lo ya pagado.
// Rechaza con ErrAlreadyPaid si los pagos previos cubren el total y con
// ErrOverpayment si el monto supera el saldo pendiente.
func Settle(due, priorPaid decimal.Decimal, req PaymentRequest) (Settlement, error) {
	if err := checkPrecision(req); err != nil {
		return Settlement{}, err
	}
	due = due.Round(CurrencyPlaces)
	if priorPaid.GreaterThanOrEqual(due) {
		return Settlement{}, domain.ErrAlreadyPaid
	}
	remaining := due.Sub(priorPaid)

	var amount, received, change decimal.Decimal
	if req.Amount.IsZero() && req.Received != nil {
		if !req.Received.GreaterThan(decimal.Zero) {
			return Settlement{}, domain.NewValidationError("received_amount", "el monto recibido debe ser mayor que cero")
		}
		received = *req.Received
		amount, change = SplitTender(remaining, received)
	} else {
		amount = req.Amount
		if !amount.GreaterThan(decimal.Zero) {
			return Settlement{}, domain.NewValidationError("amount", "el monto debe ser mayor que cero")
		}
		if amount.GreaterThan(remaining) {
			return Settlement{}, domain.ErrOverpayment
		}
		var err error
		received, change, err = resolveTender(amount, req.Received, req.Change)
		if err != nil {
			return Settlement{}, err
		}
	}

	paid := priorPaid.Add(amount)
	return Settlement{
		Amount:    amount,
		Received:  received,
		Change:    change,
		PaidAfter: paid,
		Status:    DeriveStatus(paid, due),
	}, nil
}

// checkPrecision rechaza montos con más decimales que la moneda; las columnas
// de pagos guardan CurrencyPlaces decimales.
func checkPrecision(req PaymentRequest) error {
	fields := map[string]string{}
	if !fitsCurrency(req.Amount) {
		fields["amount"] = "máximo 2 decimales"
	}
	if req.Received != nil && !fitsCurrency(*req.Received) {
		fields["received_amount"] = "máximo 2 decimales"
	}
	if req.Change != nil && !fitsCurrency(*req.Change) {
		fields["change_given"] = "máximo 2 decimales"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func fitsCurrency(d decimal.Decimal) bool {
	return d.Equal(d.Round(CurrencyPlaces))
}

// resolveTender completa recibido/cambio y exige recibido = monto + cambio.
func resolveTender(amount decimal.Decimal, received, change *decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if change != nil && change.IsNegative() {
		return decimal.Zero, decimal.Zero, domain.NewValidationError("change_given", "el cambio no puede ser negativo")
	}
	switch {
	case received == nil && change == nil:
		return amount, decimal.Zero, nil
	case received == nil:
		return amount.Add(*change), *change, nil
	case change == nil:
		c := received.Sub(amount)
		if c.IsNegative() {
			return decimal.Zero, decimal.Zero, domain.NewValidationError("received_amount", "el monto recibido es menor que el monto aplicado")
		}
		return *received, c, nil
	}
	if !received.Round(CurrencyPlaces).Equal(amount.Add(*change).Round(CurrencyPlaces)) {
		return decimal.Zero, decimal.Zero, domain.NewValidationError("received_amount", "el monto recibido debe ser igual al monto más el cambio")
	}
	return *received, *change, nil
}
