package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturapp-api/internal/application/dto"
	domainbilling "github.com/jhoicas/facturapp-api/internal/domain/billing"
	"github.com/jhoicas/facturapp-api/internal/domain/entity"
)

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	totals := domainbilling.InvoiceTotals(inv).Rounded()
	remaining := totals.TTC.Sub(inv.PaidAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	lines := make([]dto.InvoiceLineResponse, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, dto.InvoiceLineResponse{
			ID:          l.ID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Amount(),
			ProductID:   l.ProductID,
		})
	}
	return &dto.InvoiceResponse{
		ID:             inv.ID,
		Name:           inv.Name,
		IssuerName:     inv.IssuerName,
		IssuerAddress:  inv.IssuerAddress,
		ClientName:     inv.ClientName,
		ClientAddress:  inv.ClientAddress,
		InvoiceDate:    inv.InvoiceDate,
		DueDate:        inv.DueDate,
		VATActive:      inv.VATActive,
		VATRate:        inv.VATRate,
		Status:         int(inv.Status),
		StatusLabel:    inv.Status.String(),
		PaidAmount:     inv.PaidAmount,
		ReceivedAmount: inv.ReceivedAmount,
		ChangeGiven:    inv.ChangeGiven,
		PaymentMethod:  inv.PaymentMethod,
		Remaining:      remaining,
		UserID:         inv.UserID,
		ShopID:         inv.ShopID,
		Lines:          lines,
		Totals: dto.TotalsResponse{
			TotalHT:  totals.HT,
			TotalVAT: totals.VAT,
			TotalTTC: totals.TTC,
		},
		CreatedAt: inv.CreatedAt,
	}
}

func toInvoiceList(list []*entity.Invoice) *dto.InvoiceListResponse {
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{Items: items}
}

func toPaymentResponse(p *entity.InvoicePayment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:             p.ID,
		InvoiceID:      p.InvoiceID,
		Amount:         p.Amount,
		Method:         p.Method,
		ReceivedAmount: p.ReceivedAmount,
		ChangeGiven:    p.ChangeGiven,
		CreatedAt:      p.CreatedAt,
	}
}
