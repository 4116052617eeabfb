// Package article provides the Article catalog: the SKUs the
// distributor buys and sells.
package article

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
)

// Article represents a stock-keeping unit. Code and UnitsPerCase are
// identity-critical once lots or sale lines reference the article;
// descriptive fields stay editable.
type Article struct {
	ID id.ID `db:"id" json:"id"`

	// Code is the external SKU identifier (e.g. CERV001).
	Code string `db:"code" json:"code"`

	Description string `db:"description" json:"description"`

	// Unit is the unit of measure (UN, LT, ...).
	Unit string `db:"unit" json:"unit"`

	// UnitsPerCase converts requested cases into consumable units. Always >= 1.
	UnitsPerCase int `db:"units_per_case" json:"unitsPerCase"`

	// InternalTax is the flat per-unit excise amount.
	InternalTax decimal.Decimal `db:"internal_tax" json:"internalTax"`

	// VolumeML is the container volume in milliliters.
	VolumeML decimal.Decimal `db:"volume_ml" json:"volumeMl"`

	Category    *string `db:"category" json:"category,omitempty"`
	Subcategory *string `db:"subcategory" json:"subcategory,omitempty"`
	ProductType *string `db:"product_type" json:"productType,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// New creates a new Article with required fields.
func New(code, description string, unitsPerCase int) *Article {
	return &Article{
		ID:           id.New(),
		Code:         strings.ToUpper(strings.TrimSpace(code)),
		Description:  strings.TrimSpace(description),
		Unit:         "UN",
		UnitsPerCase: unitsPerCase,
		CreatedAt:    time.Now().UTC(),
	}
}

// Validate checks article invariants.
func (a *Article) Validate(ctx context.Context) error {
	if a.Code == "" {
		return apperror.NewValidation("article code is required").
			WithDetail("field", "code")
	}

	if a.Description == "" {
		return apperror.NewValidation("article description is required").
			WithDetail("field", "description")
	}

	if a.UnitsPerCase < 1 {
		return apperror.NewValidation("unitsPerCase must be at least 1").
			WithDetail("field", "unitsPerCase").
			WithDetail("value", a.UnitsPerCase)
	}

	if a.InternalTax.IsNegative() {
		return apperror.NewValidation("internal tax cannot be negative").
			WithDetail("field", "internalTax")
	}

	return nil
}
