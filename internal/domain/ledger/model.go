// Package ledger provides the lot ledger: per-article inventory batches
// with FIFO consumption and reversal.
package ledger

import (
	"context"
	"time"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
	"bevstock/internal/core/types"
)

// Lot is one inventory batch for an article. Lots are never deleted; a
// lot with zero remaining quantity is simply excluded from consumption.
// RemainingQuantity is mutated only by the sale engine (decrement on
// sale, increment on reversal) and always satisfies 0 <= remaining.
type Lot struct {
	ID        id.ID `db:"id" json:"id"`
	ArticleID id.ID `db:"article_id" json:"articleId"`

	ProviderID   *id.ID `db:"provider_id" json:"providerId,omitempty"`
	ProviderName string `db:"provider_name" json:"providerName"`

	// InvoiceNumber and InvoiceDate come from the supplier invoice that
	// delivered the batch. InvoiceDate is the FIFO ordering key.
	InvoiceNumber string    `db:"invoice_number" json:"invoiceNumber"`
	InvoiceDate   time.Time `db:"invoice_date" json:"invoiceDate"`

	InitialQuantity   types.Quantity `db:"initial_quantity" json:"initialQuantity"`
	RemainingQuantity types.Quantity `db:"remaining_quantity" json:"remainingQuantity"`

	// UnitCost is fixed at lot creation.
	UnitCost types.Money `db:"unit_cost" json:"unitCost"`

	SocietyID  id.ID  `db:"society_id" json:"societyId"`
	PurchaseID *id.ID `db:"purchase_id" json:"purchaseId,omitempty"`

	LotNumber string `db:"lot_number" json:"lotNumber"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewLot describes a lot to be created. Remaining starts equal to the
// initial quantity.
type NewLot struct {
	ArticleID     id.ID
	ProviderID    *id.ID
	ProviderName  string
	InvoiceNumber string
	InvoiceDate   time.Time
	Quantity      types.Quantity
	UnitCost      types.Money
	SocietyID     id.ID
	PurchaseID    *id.ID
	LotNumber     string
}

// Validate checks the new-lot input.
func (n *NewLot) Validate(ctx context.Context) error {
	if id.IsNil(n.ArticleID) {
		return apperror.NewValidation("article is required").
			WithDetail("field", "articleId")
	}
	if !n.Quantity.IsPositive() {
		return apperror.NewValidation("lot quantity must be positive").
			WithDetail("field", "quantity")
	}
	if n.UnitCost.IsNegative() {
		return apperror.NewValidation("unit cost cannot be negative").
			WithDetail("field", "unitCost")
	}
	return nil
}

// ConsumedPart records how many units were taken from one lot during a
// FIFO consumption and at what unit cost.
type ConsumedPart struct {
	LotID     id.ID
	LotNumber string
	Units     types.Quantity
	UnitCost  types.Money
}

// Consumption is the outcome of one FIFO consumption: the per-lot
// breakdown, the blended total cost, and the last lot touched (the one
// a sale line records as its lot reference).
type Consumption struct {
	Parts     []ConsumedPart
	TotalCost types.Money
	LastLotID *id.ID
}
