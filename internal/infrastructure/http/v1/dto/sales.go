package dto

import (
	"time"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/types"
	"bevstock/internal/domain/sales"
)

// SaleLineRequest is one requested cart entry.
type SaleLineRequest struct {
	ArticleID    string  `json:"articleId" binding:"required"`
	Cases        int     `json:"cases" binding:"required,min=1"`
	PricePerCase float64 `json:"pricePerCase" binding:"min=0"`
}

// SaleRequest creates or fully replaces a sale.
type SaleRequest struct {
	Date      string            `json:"date"`
	ClientID  string            `json:"clientId" binding:"required"`
	SocietyID *string           `json:"societyId"`
	Lines     []SaleLineRequest `json:"lines" binding:"required"`
}

// ToInput converts the request to the engine's input shape.
func (r *SaleRequest) ToInput() (*sales.Input, error) {
	clientID, err := ParseID("clientId", r.ClientID)
	if err != nil {
		return nil, err
	}
	societyID, err := ParseOptionalID("societyId", r.SocietyID)
	if err != nil {
		return nil, err
	}
	date, err := ParseDate("date", r.Date)
	if err != nil {
		return nil, err
	}

	in := &sales.Input{
		Date:      date,
		ClientID:  clientID,
		SocietyID: societyID,
	}
	for i, line := range r.Lines {
		articleID, err := ParseID("lines.articleId", line.ArticleID)
		if err != nil {
			return nil, apperror.NewValidation("invalid article identifier").
				WithDetail("field", "lines").
				WithDetail("line", i)
		}
		in.Lines = append(in.Lines, sales.LineInput{
			ArticleID:    articleID,
			Cases:        line.Cases,
			PricePerCase: types.NewMoney(line.PricePerCase),
		})
	}
	return in, nil
}

// ParseDate accepts a calendar date or an RFC 3339 timestamp. Empty
// means "today" and is resolved by the engine.
func ParseDate(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, apperror.NewValidation("invalid date").
		WithDetail("field", field).
		WithDetail("value", raw)
}

// SaleListQuery narrows sale listings.
type SaleListQuery struct {
	ClientID string `form:"clientId"`
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}

// ToFilter converts the query to the engine's filter shape.
func (q *SaleListQuery) ToFilter() (sales.ListFilter, error) {
	filter := sales.ListFilter{Limit: q.Limit, Offset: q.Offset}

	if q.ClientID != "" {
		clientID, err := ParseID("clientId", q.ClientID)
		if err != nil {
			return filter, err
		}
		filter.ClientID = &clientID
	}
	if q.DateFrom != "" {
		from, err := ParseDate("dateFrom", q.DateFrom)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &from
	}
	if q.DateTo != "" {
		to, err := ParseDate("dateTo", q.DateTo)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &to
	}
	return filter, nil
}
