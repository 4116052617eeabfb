package dto

import (
	"bevstock/internal/core/types"
	"bevstock/internal/domain/ledger"
)

// AddStockRequest manually adds a lot for an article.
type AddStockRequest struct {
	ArticleID  string  `json:"articleId" binding:"required"`
	ProviderID *string `json:"providerId"`
	SocietyID  *string `json:"societyId"`

	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	UnitCost float64 `json:"unitCost" binding:"min=0"`

	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceDate   string `json:"invoiceDate"`
	LotNumber     string `json:"lotNumber"`
}

// ToNewLot converts the request to the ledger's input shape. The
// society is resolved by the handler when the payload omits it.
func (r *AddStockRequest) ToNewLot() (*ledger.NewLot, *string, error) {
	articleID, err := ParseID("articleId", r.ArticleID)
	if err != nil {
		return nil, nil, err
	}
	providerID, err := ParseOptionalID("providerId", r.ProviderID)
	if err != nil {
		return nil, nil, err
	}
	invoiceDate, err := ParseDate("invoiceDate", r.InvoiceDate)
	if err != nil {
		return nil, nil, err
	}

	n := &ledger.NewLot{
		ArticleID:     articleID,
		ProviderID:    providerID,
		InvoiceNumber: r.InvoiceNumber,
		InvoiceDate:   invoiceDate,
		Quantity:      types.NewQuantityFromFloat64(r.Quantity),
		UnitCost:      types.NewMoney(r.UnitCost),
		LotNumber:     r.LotNumber,
	}
	return n, r.SocietyID, nil
}
