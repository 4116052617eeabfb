// Package purchasing records supplier purchases and feeds the lot
// ledger: every purchase entry creates exactly one new lot.
package purchasing

import (
	"context"
	"time"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
	"bevstock/internal/core/types"
)

// Purchase is one costed purchase entry under a supplier invoice.
// SubTotal, TotalCost and UnitCost are derived from the components and
// persisted for read efficiency.
type Purchase struct {
	ID id.ID `db:"id" json:"id"`

	ArticleID  id.ID  `db:"article_id" json:"articleId"`
	ProviderID *id.ID `db:"provider_id" json:"providerId,omitempty"`
	SocietyID  id.ID  `db:"society_id" json:"societyId"`

	InvoiceNumber string    `db:"invoice_number" json:"invoiceNumber"`
	InvoiceDate   time.Time `db:"invoice_date" json:"invoiceDate"`
	ReceiptDate   time.Time `db:"receipt_date" json:"receiptDate"`

	Quantity types.Quantity `db:"quantity" json:"quantity"`

	NetAmount             types.Money `db:"net_amount" json:"netAmount"`
	ShippingCost          types.Money `db:"shipping_cost" json:"shippingCost"`
	InternalTaxes         types.Money `db:"internal_taxes" json:"internalTaxes"`
	VATPerception         types.Money `db:"vat_perception" json:"vatPerception"`
	GrossIncomePerception types.Money `db:"gross_income_perception" json:"grossIncomePerception"`

	SubTotal  types.Money `db:"sub_total" json:"subTotal"`
	TotalCost types.Money `db:"total_cost" json:"totalCost"`
	UnitCost  types.Money `db:"unit_cost" json:"unitCost"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Invoice identifies the supplier invoice a batch of entries belongs to.
type Invoice struct {
	Number      string
	InvoiceDate time.Time
	ReceiptDate time.Time
}

// Entry is one requested purchase item.
type Entry struct {
	ArticleID  id.ID
	ProviderID *id.ID
	SocietyID  *id.ID // default society when absent

	Quantity types.Quantity

	NetAmount             types.Money
	ShippingCost          types.Money
	InternalTaxes         types.Money
	VATPerception         types.Money
	GrossIncomePerception types.Money
}

// BatchInput is a full invoice with its entries, processed atomically.
type BatchInput struct {
	Invoice Invoice
	Entries []Entry
}

// Validate checks the batch shape before any store access.
func (b *BatchInput) Validate(ctx context.Context) error {
	if b.Invoice.Number == "" {
		return apperror.NewValidation("invoice number is required").
			WithDetail("field", "invoice.number")
	}
	if len(b.Entries) == 0 {
		return apperror.NewValidation("purchase batch must have at least one entry").
			WithDetail("field", "items")
	}
	for i, e := range b.Entries {
		if id.IsNil(e.ArticleID) {
			return apperror.NewValidation("entry is missing an article").
				WithDetail("field", "items").
				WithDetail("item", i)
		}
		if !e.Quantity.IsPositive() {
			return apperror.NewValidation("entry quantity must be positive").
				WithDetail("field", "items").
				WithDetail("item", i)
		}
		if e.NetAmount.IsNegative() {
			return apperror.NewValidation("net amount cannot be negative").
				WithDetail("field", "items").
				WithDetail("item", i)
		}
	}
	return nil
}

// cost derives the entry's aggregate amounts. SubTotal is the taxed net
// before perceptions; TotalCost adds every component; UnitCost is
// TotalCost spread over the purchased quantity.
func (e *Entry) cost() (subTotal, totalCost, unitCost types.Money) {
	subTotal = e.NetAmount.Add(e.InternalTaxes)
	totalCost = subTotal.
		Add(e.ShippingCost).
		Add(e.VATPerception).
		Add(e.GrossIncomePerception)
	unitCost = totalCost.DivRound(e.Quantity.Decimal(), 4)
	return subTotal, totalCost, unitCost
}

// BatchResult summarizes a committed batch.
type BatchResult struct {
	Recorded  int     `json:"recorded"`
	Purchases []id.ID `json:"purchaseIds"`
	Lots      []id.ID `json:"lotIds"`
}
