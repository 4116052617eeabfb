package dto

import (
	"bevstock/internal/core/types"
	"bevstock/internal/domain/purchasing"
)

// PurchaseInvoiceRequest identifies the supplier invoice.
type PurchaseInvoiceRequest struct {
	Number      string `json:"number" binding:"required"`
	InvoiceDate string `json:"invoiceDate"`
	ReceiptDate string `json:"receiptDate"`
}

// PurchaseItemRequest is one costed purchase entry.
type PurchaseItemRequest struct {
	ArticleID  string  `json:"articleId" binding:"required"`
	ProviderID *string `json:"providerId"`
	SocietyID  *string `json:"societyId"`

	Quantity float64 `json:"quantity" binding:"required,gt=0"`

	NetAmount             float64 `json:"netAmount" binding:"min=0"`
	ShippingCost          float64 `json:"shippingCost"`
	InternalTaxes         float64 `json:"internalTaxes"`
	VATPerception         float64 `json:"vatPerception"`
	GrossIncomePerception float64 `json:"grossIncomePerception"`
}

// PurchaseBatchRequest is a full invoice with its entries.
type PurchaseBatchRequest struct {
	Invoice PurchaseInvoiceRequest `json:"invoice" binding:"required"`
	Items   []PurchaseItemRequest  `json:"items" binding:"required"`
}

// ToInput converts the request to the recorder's input shape.
func (r *PurchaseBatchRequest) ToInput() (*purchasing.BatchInput, error) {
	invoiceDate, err := ParseDate("invoice.invoiceDate", r.Invoice.InvoiceDate)
	if err != nil {
		return nil, err
	}
	receiptDate, err := ParseDate("invoice.receiptDate", r.Invoice.ReceiptDate)
	if err != nil {
		return nil, err
	}

	in := &purchasing.BatchInput{
		Invoice: purchasing.Invoice{
			Number:      r.Invoice.Number,
			InvoiceDate: invoiceDate,
			ReceiptDate: receiptDate,
		},
	}
	for _, item := range r.Items {
		articleID, err := ParseID("items.articleId", item.ArticleID)
		if err != nil {
			return nil, err
		}
		providerID, err := ParseOptionalID("items.providerId", item.ProviderID)
		if err != nil {
			return nil, err
		}
		societyID, err := ParseOptionalID("items.societyId", item.SocietyID)
		if err != nil {
			return nil, err
		}

		in.Entries = append(in.Entries, purchasing.Entry{
			ArticleID:             articleID,
			ProviderID:            providerID,
			SocietyID:             societyID,
			Quantity:              types.NewQuantityFromFloat64(item.Quantity),
			NetAmount:             types.NewMoney(item.NetAmount),
			ShippingCost:          types.NewMoney(item.ShippingCost),
			InternalTaxes:         types.NewMoney(item.InternalTaxes),
			VATPerception:         types.NewMoney(item.VATPerception),
			GrossIncomePerception: types.NewMoney(item.GrossIncomePerception),
		})
	}
	return in, nil
}
