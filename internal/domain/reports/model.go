// Package reports provides the read-only query surface: aggregate
// stock views and dashboard counters. No operation here mutates state.
package reports

import (
	"time"

	"bevstock/internal/core/id"
	"bevstock/internal/core/types"
)

// StockStatus classifies an article's aggregate stock level.
type StockStatus string

const (
	StockEmpty StockStatus = "EMPTY"
	StockLow   StockStatus = "LOW"
	StockOK    StockStatus = "OK"
)

// ClassifyStock derives the status from total available units and the
// article's case size: empty at zero, low below one full case.
func ClassifyStock(available types.Quantity, unitsPerCase int) StockStatus {
	switch {
	case !available.IsPositive():
		return StockEmpty
	case available < types.NewQuantityFromInt(unitsPerCase):
		return StockLow
	default:
		return StockOK
	}
}

// StockRow is one article's aggregate stock position.
type StockRow struct {
	ArticleID   id.ID  `db:"article_id" json:"articleId"`
	Code        string `db:"code" json:"code"`
	Description string `db:"description" json:"description"`
	Unit        string `db:"unit" json:"unit"`
	Category    *string `db:"category" json:"category,omitempty"`

	UnitsPerCase   int            `db:"units_per_case" json:"unitsPerCase"`
	AvailableUnits types.Quantity `db:"available_units" json:"availableUnits"`
	LotCount       int            `db:"lot_count" json:"lotCount"`

	AvailableCases float64     `json:"availableCases"`
	Status         StockStatus `json:"status"`
}

// ArticleStock is the single-article summary.
type ArticleStock struct {
	ArticleID      id.ID          `json:"articleId"`
	UnitsPerCase   int            `json:"unitsPerCase"`
	AvailableUnits types.Quantity `json:"availableUnits"`
	AvailableCases float64        `json:"availableCases"`
	Status         StockStatus    `json:"status"`
}

// LotDetailRow is one open lot of an article, FIFO order, with the
// denormalized names a stock screen shows.
type LotDetailRow struct {
	LotID          id.ID          `db:"lot_id" json:"lotId"`
	SocietyName    string         `db:"society_name" json:"society"`
	InvoiceDate    time.Time      `db:"invoice_date" json:"invoiceDate"`
	ArticleCode    string         `db:"article_code" json:"articleCode"`
	Description    string         `db:"description" json:"description"`
	ProviderName   string         `db:"provider_name" json:"provider"`
	InvoiceNumber  string         `db:"invoice_number" json:"invoiceNumber"`
	AvailableUnits types.Quantity `db:"available_units" json:"availableUnits"`
	UnitCost       types.Money    `db:"unit_cost" json:"unitCost"`
	Unit           string         `db:"unit" json:"unit"`
	UnitsPerCase   int            `db:"units_per_case" json:"unitsPerCase"`
	LotNumber      string         `db:"lot_number" json:"lotNumber"`
}

// Dashboard aggregates the headline counters.
type Dashboard struct {
	TotalSales       int64       `json:"totalSales"`
	TotalSalesAmount types.Money `json:"totalSalesAmount"`
	TotalClients     int64       `json:"totalClients"`
	TotalArticles    int64       `json:"totalArticles"`
	SalesToday       int64       `json:"salesToday"`
	AmountToday      types.Money `json:"amountToday"`
}
