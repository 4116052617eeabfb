// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
)

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ListResponse wraps list results.
type ListResponse struct {
	Items any `json:"items"`
	Total int `json:"total"`
}

// ParseID parses a path or body ID, mapping failure to a validation
// error so the middleware renders 400 instead of 500.
func ParseID(field, raw string) (id.ID, error) {
	parsed, err := id.Parse(raw)
	if err != nil {
		return id.Nil(), apperror.NewValidation("invalid identifier").
			WithDetail("field", field).
			WithDetail("value", raw)
	}
	return parsed, nil
}

// ParseOptionalID parses an optional ID, returning nil when absent.
func ParseOptionalID(field string, raw *string) (*id.ID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := ParseID(field, *raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
