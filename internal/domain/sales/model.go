// Package sales implements the sale transaction engine: validation,
// FIFO stock depletion, monetary aggregation and persistence of sale
// documents, all inside one atomic unit of work.
package sales

import (
	"context"
	"time"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
	"bevstock/internal/core/types"
)

// Sale is the document header. TotalCost and TotalMargin are derived
// from the lines at commit time and persisted for read efficiency.
type Sale struct {
	ID       id.ID     `db:"id" json:"id"`
	SaleDate time.Time `db:"sale_date" json:"date"`

	ClientID  id.ID `db:"client_id" json:"clientId"`
	SocietyID id.ID `db:"society_id" json:"societyId"`

	TotalSale   types.Money `db:"total_sale" json:"totalSale"`
	TotalCost   types.Money `db:"total_cost" json:"totalCost"`
	TotalMargin types.Money `db:"total_margin" json:"totalMargin"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Line is one itemized entry of a sale. LotID references the last lot
// touched by the line's FIFO consumption; when the demand spanned
// several lots only this one is retained, though CostTotal is blended
// across all of them.
type Line struct {
	ID     id.ID `db:"id" json:"id"`
	SaleID id.ID `db:"sale_id" json:"saleId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ArticleID          id.ID  `db:"article_id" json:"articleId"`
	ArticleCode        string `db:"article_code" json:"articleCode"`
	ArticleDescription string `db:"article_description" json:"articleDescription"`

	LotID *id.ID `db:"lot_id" json:"lotId,omitempty"`

	Cases int            `db:"cases" json:"cases"`
	Units types.Quantity `db:"units" json:"units"`

	PricePerCase types.Money `db:"price_per_case" json:"pricePerCase"`
	PricePerUnit types.Money `db:"price_per_unit" json:"pricePerUnit"`

	SaleTotal   types.Money `db:"sale_total" json:"saleTotal"`
	CostTotal   types.Money `db:"cost_total" json:"costTotal"`
	MarginTotal types.Money `db:"margin_total" json:"marginTotal"`
}

// LineInput is one requested cart entry.
type LineInput struct {
	ArticleID    id.ID
	Cases        int
	PricePerCase types.Money
}

// Input is the full payload for creating or replacing a sale. An
// update is a destructive replace of the whole line list, not a merge.
type Input struct {
	Date      time.Time
	ClientID  id.ID
	SocietyID *id.ID // default society when absent
	Lines     []LineInput
}

// Validate checks the input shape before any store access.
func (in *Input) Validate(ctx context.Context) error {
	if id.IsNil(in.ClientID) {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}
	if len(in.Lines) == 0 {
		return apperror.NewValidation("sale must have at least one line").
			WithDetail("field", "lines")
	}
	for i, line := range in.Lines {
		if id.IsNil(line.ArticleID) {
			return apperror.NewValidation("line is missing an article").
				WithDetail("field", "lines").
				WithDetail("line", i)
		}
		if line.Cases <= 0 {
			return apperror.NewValidation("line cases must be positive").
				WithDetail("field", "lines").
				WithDetail("line", i)
		}
		if line.PricePerCase.IsNegative() {
			return apperror.NewValidation("price per case cannot be negative").
				WithDetail("field", "lines").
				WithDetail("line", i)
		}
	}
	return nil
}

// Result is the commit summary returned to the caller.
type Result struct {
	SaleID      id.ID  `json:"saleId"`
	TotalSale   string `json:"totalSale"`
	TotalCost   string `json:"totalCost"`
	TotalMargin string `json:"totalMargin"`
}

// Detail is a sale with its lines, for reads.
type Detail struct {
	Sale  *Sale   `json:"sale"`
	Lines []*Line `json:"lines"`
}

// PreviewLine is the computed breakdown for one requested line, using
// requested prices only. Stock is neither checked nor consumed.
type PreviewLine struct {
	ArticleID    id.ID       `json:"articleId"`
	Description  string      `json:"description"`
	Cases        int         `json:"cases"`
	Units        int         `json:"units"`
	PricePerCase types.Money `json:"pricePerCase"`
	PricePerUnit types.Money `json:"pricePerUnit"`
	SaleTotal    types.Money `json:"saleTotal"`
}

// Preview is the non-mutating quote for a cart.
type Preview struct {
	Lines     []PreviewLine `json:"lines"`
	TotalSale types.Money   `json:"totalSale"`
}

// ListFilter narrows sale listings.
type ListFilter struct {
	ClientID *id.ID
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}
