package document

import (
	"github.com/tradeworks/backend/internal/domain/billing"
	"github.com/tradeworks/backend/internal/domain/crm"
	"github.com/tradeworks/backend/internal/infrastructure/render"
)

// BuildQuotationDocument maps a quotation and its customer to render
// input. Monetary fields are copied from the stored header, never
// recomputed from line items.
func BuildQuotationDocument(q *billing.Quotation, customer *crm.Customer) *render.Document {
	items := make([]render.LineItem, len(q.Items))
	for i, item := range q.Items {
		items[i] = render.LineItem{
			Description: item.Description,
			Category:    item.Category,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}

	return &render.Document{
		Kind:             render.KindQuotation,
		ReferenceNumber:  q.Number,
		IssueDate:        q.IssueDate,
		DueDate:          q.ExpiryDate,
		Status:           q.Status.DisplayName(),
		Subject:          q.Subject,
		Terms:            q.Terms,
		Customer:         toRenderCustomer(customer),
		Items:            items,
		Subtotal:         q.Subtotal,
		RequiresDeposit:  q.RequiresDeposit,
		DepositPercent:   q.DepositPercent,
		DepositAmount:    q.DepositAmount,
		Total:            q.Total,
		SignatureDataURI: q.SignatureData,
	}
}

// BuildInvoiceDocument maps an invoice and its customer to render input
func BuildInvoiceDocument(inv *billing.Invoice, customer *crm.Customer) *render.Document {
	items := make([]render.LineItem, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = render.LineItem{
			Description: item.Description,
			Category:    item.Category,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}

	photos := make([]render.Attachment, len(inv.Photos))
	for i, photo := range inv.Photos {
		photos[i] = render.Attachment{
			URL:     photo.URL,
			Index:   photo.SortOrder,
			Caption: photo.Caption,
		}
	}

	return &render.Document{
		Kind:             render.KindInvoice,
		ReferenceNumber:  inv.Number,
		IssueDate:        inv.IssueDate,
		DueDate:          inv.DueDate,
		Status:           inv.Status.DisplayName(),
		Subject:          inv.Subject,
		Terms:            inv.Terms,
		Customer:         toRenderCustomer(customer),
		Items:            items,
		Subtotal:         inv.Subtotal,
		TaxRate:          inv.TaxRate,
		TaxAmount:        inv.TaxAmount,
		IsDepositInvoice: inv.IsDepositInvoice,
		DepositAmount:    inv.DepositAmount,
		SourceQuotation:  inv.QuotationNumber,
		Total:            inv.Total,
		Photos:           photos,
	}
}

func toRenderCustomer(customer *crm.Customer) render.Customer {
	if customer == nil {
		return render.Customer{}
	}
	return render.Customer{
		Name:       customer.Name,
		UnitNumber: customer.UnitNumber,
		Address:    customer.Address,
		Phone:      customer.Phone,
		Email:      customer.Email,
	}
}
