package billing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturapp-api/internal/domain"
	"github.com/jhoicas/facturapp-api/internal/domain/billing"
	"github.com/jhoicas/facturapp-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func line(id, desc string, qty int64, price string) entity.InvoiceLine {
	return entity.InvoiceLine{ID: id, Description: desc, Quantity: qty, UnitPrice: dec(price)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeTotals_EscenarioConIVA(t *testing.T) {
	lines := []entity.InvoiceLine{line("a", "x", 2, "100"), line("b", "y", 1, "50")}

	tot := billing.ComputeTotals(lines, true, dec("20"))

	assert.True(t, tot.HT.Equal(dec("250")), "HT = %s", tot.HT)
	assert.True(t, tot.VAT.Equal(dec("50")), "VAT = %s", tot.VAT)
	assert.True(t, tot.TTC.Equal(dec("300")), "TTC = %s", tot.TTC)
}

func TestComputeTotals_SinIVAIgnoraTasa(t *testing.T) {
	lines := []entity.InvoiceLine{line("a", "x", 3, "10.10")}
	tot := billing.ComputeTotals(lines, false, dec("20"))
	assert.True(t, tot.VAT.IsZero())
	assert.True(t, tot.TTC.Equal(dec("30.30")))
}

func TestComputeTotals_PuraYConmutativa(t *testing.T) {
	a := line("a", "x", 7, "13.37")
	b := line("b", "y", 3, "0.333")
	c := line("c", "z", 1, "99.99")

	first := billing.ComputeTotals([]entity.InvoiceLine{a, b, c}, true, dec("18"))
	second := billing.ComputeTotals([]entity.InvoiceLine{a, b, c}, true, dec("18"))
	reordered := billing.ComputeTotals([]entity.InvoiceLine{c, a, b}, true, dec("18"))

	assert.True(t, first.TTC.Equal(second.TTC))
	assert.True(t, first.TTC.Equal(reordered.TTC))
	assert.True(t, first.Rounded().TTC.Equal(first.Due()))
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado y liquidación de pagos
// ──────────────────────────────────────────────────────────────────────────────

func TestDeriveStatus(t *testing.T) {
	due := dec("300")
	cases := []struct {
		paid string
		want entity.InvoiceStatus
	}{
		{"0", entity.InvoiceStatusUnpaid},
		{"-1", entity.InvoiceStatusUnpaid},
		{"0.01", entity.InvoiceStatusPending},
		{"299.99", entity.InvoiceStatusPending},
		{"300", entity.InvoiceStatusPaid},
		{"300.50", entity.InvoiceStatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.paid, func(t *testing.T) {
			assert.Equal(t, tc.want, billing.DeriveStatus(dec(tc.paid), due))
		})
	}
}

func TestSettle_PagoTotalMarcaPaid(t *testing.T) {
	s, err := billing.Settle(dec("300"), decimal.Zero, billing.PaymentRequest{Amount: dec("300")})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, s.Status)
	assert.True(t, s.PaidAfter.Equal(dec("300")))
	assert.True(t, s.Received.Equal(dec("300")))
	assert.True(t, s.Change.IsZero())
}

func TestSettle_SecuenciaDePagos(t *testing.T) {
	due := dec("300")
	paid := decimal.Zero
	for i, amount := range []string{"100", "50", "150"} {
		s, err := billing.Settle(due, paid, billing.PaymentRequest{Amount: dec(amount)})
		require.NoError(t, err, "pago %d", i)
		paid = s.PaidAfter
		if i < 2 {
			assert.Equal(t, entity.InvoiceStatusPending, s.Status)
		} else {
			assert.Equal(t, entity.InvoiceStatusPaid, s.Status)
		}
	}
	assert.True(t, paid.Equal(due))

	_, err := billing.Settle(due, paid, billing.PaymentRequest{Amount: dec("1")})
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSettle_Rechazos(t *testing.T) {
	due := dec("100")

	_, err := billing.Settle(due, decimal.Zero, billing.PaymentRequest{Amount: dec("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = billing.Settle(due, decimal.Zero, billing.PaymentRequest{Amount: dec("-5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = billing.Settle(due, dec("40"), billing.PaymentRequest{Amount: dec("60.01")})
	assert.ErrorIs(t, err, domain.ErrOverpayment)

	_, err = billing.Settle(due, decimal.Zero, billing.PaymentRequest{
		Amount: dec("50"), Received: ptr(dec("60")), Change: ptr(dec("5")),
	})
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Fields, "received_amount")
}

func TestSettle_RechazaFraccionesDeCentimo(t *testing.T) {
	due := dec("100")
	cases := []struct {
		name  string
		req   billing.PaymentRequest
		field string
	}{
		{"monto casi total", billing.PaymentRequest{Amount: dec("99.996")}, "amount"},
		{"monto menor a un céntimo", billing.PaymentRequest{Amount: dec("0.001")}, "amount"},
		{"recibido", billing.PaymentRequest{Amount: dec("10"), Received: ptr(dec("10.005"))}, "received_amount"},
		{"cambio", billing.PaymentRequest{Amount: dec("10"), Change: ptr(dec("0.001"))}, "change_given"},
		{"solo recibido", billing.PaymentRequest{Received: ptr(dec("20.125"))}, "received_amount"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := billing.Settle(due, decimal.Zero, tc.req)
			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr), "err = %v", err)
			assert.Contains(t, vErr.Fields, tc.field)
		})
	}

	s, err := billing.Settle(due, decimal.Zero, billing.PaymentRequest{Amount: dec("1.500")})
	require.NoError(t, err, "ceros a la derecha no agregan precisión")
	assert.True(t, s.PaidAfter.Equal(dec("1.5")))
}

func TestSettle_RecibidoYCambio(t *testing.T) {
	due := dec("100")

	s, err := billing.Settle(due, decimal.Zero, billing.PaymentRequest{Amount: dec("40"), Received: ptr(dec("50"))})
	require.NoError(t, err)
	assert.True(t, s.Change.Equal(dec("10")))

	s, err = billing.Settle(due, decimal.Zero, billing.PaymentRequest{Amount: dec("40"), Change: ptr(dec("2"))})
	require.NoError(t, err)
	assert.True(t, s.Received.Equal(dec("42")))

	s, err = billing.Settle(due, decimal.Zero, billing.PaymentRequest{Amount: dec("40"), Received: ptr(dec("45")), Change: ptr(dec("5"))})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPending, s.Status)
}

func TestSettle_SoloRecibidoAplicaTopeYCambio(t *testing.T) {
	s, err := billing.Settle(dec("300"), dec("250"), billing.PaymentRequest{Received: ptr(dec("100"))})
	require.NoError(t, err)
	assert.True(t, s.Amount.Equal(dec("50")))
	assert.True(t, s.Change.Equal(dec("50")))
	assert.True(t, s.Received.Equal(dec("100")))
	assert.Equal(t, entity.InvoiceStatusPaid, s.Status)
}

func TestSplitTender(t *testing.T) {
	amount, change := billing.SplitTender(dec("80"), dec("100"))
	assert.True(t, amount.Equal(dec("80")))
	assert.True(t, change.Equal(dec("20")))

	amount, change = billing.SplitTender(dec("80"), dec("30"))
	assert.True(t, amount.Equal(dec("30")))
	assert.True(t, change.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Vencimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcileOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	invs := []*entity.Invoice{
		{ID: "aaaaaa", Status: entity.InvoiceStatusPending, DueDate: "2026-03-14"},
		{ID: "bbbbbb", Status: entity.InvoiceStatusPending, DueDate: "2026-03-15"},
		{ID: "cccccc", Status: entity.InvoiceStatusPending, DueDate: "2026-04-01"},
		{ID: "dddddd", Status: entity.InvoiceStatusDraft, DueDate: "2020-01-01"},
		{ID: "eeeeee", Status: entity.InvoiceStatusPending, DueDate: ""},
		{ID: "ffffff", Status: entity.InvoiceStatusPending, DueDate: "15/03/2020"},
	}

	ids := billing.ReconcileOverdue(invs, now)

	assert.Equal(t, []string{"aaaaaa"}, ids)
	assert.Equal(t, entity.InvoiceStatusUnpaid, invs[0].Status)
	assert.Equal(t, entity.InvoiceStatusPending, invs[1].Status, "vence hoy: aún no está vencida")
	assert.Equal(t, entity.InvoiceStatusPending, invs[2].Status)
	assert.Equal(t, entity.InvoiceStatusDraft, invs[3].Status)

	assert.Empty(t, billing.ReconcileOverdue(invs, now), "la transición es idempotente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Sincronización de líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestDiffLines_EliminaActualizaYCrea(t *testing.T) {
	existing := []entity.InvoiceLine{
		line("A", "silla", 1, "10"),
		line("B", "mesa", 1, "50"),
		line("C", "lámpara", 2, "5"),
	}
	submitted := []entity.InvoiceLine{
		line("A", "silla", 3, "10"),
		line("C", "lámpara", 2, "5.00"),
		line("", "alfombra", 1, "80"),
	}

	ch := billing.DiffLines(existing, submitted)

	assert.Equal(t, []string{"B"}, ch.Delete)
	require.Len(t, ch.Update, 1)
	assert.Equal(t, "A", ch.Update[0].ID)
	assert.Equal(t, int64(3), ch.Update[0].Quantity)
	require.Len(t, ch.Create, 1)
	assert.Equal(t, "alfombra", ch.Create[0].Description)
}

func TestDiffLines_IDDesconocidoEsNuevaLinea(t *testing.T) {
	existing := []entity.InvoiceLine{line("A", "x", 1, "1")}
	submitted := []entity.InvoiceLine{line("A", "x", 1, "1"), line("Z", "y", 1, "1"), line("A", "x", 1, "1")}

	ch := billing.DiffLines(existing, submitted)

	assert.Empty(t, ch.Delete)
	assert.Empty(t, ch.Update)
	require.Len(t, ch.Create, 2, "ID desconocido y duplicado se tratan como nuevas")
	for _, c := range ch.Create {
		assert.Empty(t, c.ID)
	}
}

func TestDiffLines_SinCambios(t *testing.T) {
	existing := []entity.InvoiceLine{line("A", "x", 1, "1")}
	assert.True(t, billing.DiffLines(existing, existing).Empty())
}
