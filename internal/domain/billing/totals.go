// Package billing contiene las reglas puras de facturación: totales, estado,
// liquidación de pagos, vencimiento y sincronización de líneas.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturapp-api/internal/domain/entity"
)

// CurrencyPlaces decimales de la moneda para presentación y liquidación.
const CurrencyPlaces = 2

var hundred = decimal.NewFromInt(100)

// Totals totales de una factura. Se calculan con precisión completa.
type Totals struct {
	HT  decimal.Decimal // sin impuestos
	VAT decimal.Decimal
	TTC decimal.Decimal // con impuestos
}

// Rounded devuelve los totales redondeados a la precisión de la moneda.
func (t Totals) Rounded() Totals {
	return Totals{
		HT:  t.HT.Round(CurrencyPlaces),
		VAT: t.VAT.Round(CurrencyPlaces),
		TTC: t.TTC.Round(CurrencyPlaces),
	}
}

// Due monto exigible de la factura (TTC a la precisión de la moneda).
func (t Totals) Due() decimal.Decimal {
	return t.TTC.Round(CurrencyPlaces)
}

// ComputeTotals HT = Σ(cantidad × precio); VAT = HT × tasa/100 solo si vatActive.
func ComputeTotals(lines []entity.InvoiceLine, vatActive bool, vatRate decimal.Decimal) Totals {
	ht := decimal.Zero
	for _, l := range lines {
		ht = ht.Add(l.Amount())
	}
	vat := decimal.Zero
	if vatActive {
		vat = ht.Mul(vatRate).Div(hundred)
	}
	return Totals{HT: ht, VAT: vat, TTC: ht.Add(vat)}
}

// InvoiceTotals atajo sobre la factura completa.
func InvoiceTotals(inv *entity.Invoice) Totals {
	return ComputeTotals(inv.Lines, inv.VATActive, inv.VATRate)
}
