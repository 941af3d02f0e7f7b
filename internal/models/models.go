package models

import "time"

// Invoice groups line items billed to a customer at a point in time.
// Total is derived from the items at write time; client-supplied totals
// are never persisted.
type Invoice struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email"`
	CreatedAt     time.Time     `json:"created_at"`
	Total         float64       `gorm:"not null" json:"total"`
	Items         []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// InvoiceItem is a single product/quantity/rate line within an invoice.
// LineTotal and Profit are recomputed server-side on every write.
type InvoiceItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	InvoiceID   uint    `gorm:"not null;index" json:"invoice_id"`
	ProductName string  `gorm:"not null" json:"product_name"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	Rate        float64 `gorm:"not null" json:"rate"`
	CostPrice   float64 `gorm:"not null" json:"cost_price"`
	LineTotal   float64 `gorm:"not null" json:"line_total"`
	Profit      float64 `gorm:"not null" json:"profit"`
}

// Product is reference catalog data. Invoice items carry free-text product
// names and are not required to match a catalog entry.
type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null;unique" json:"product_name"`
	CostPrice     float64   `gorm:"not null" json:"cost_price"`
	SellingPrice  float64   `gorm:"not null" json:"selling_price"`
	MarginPercent float64   `gorm:"not null" json:"margin_percent"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProfitSummary holds the aggregated profit figures for one invoice (1:1).
// InvoiceDate is the date-only portion of the invoice timestamp, denormalized
// so period aggregates can match on a prefix instead of parsing timestamps.
type ProfitSummary struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	InvoiceID     uint    `gorm:"not null;uniqueIndex" json:"invoice_id"`
	TotalSelling  float64 `gorm:"not null" json:"total_selling"`
	TotalCost     float64 `gorm:"not null" json:"total_cost"`
	TotalProfit   float64 `gorm:"not null" json:"total_profit"`
	ProfitPercent float64 `gorm:"not null" json:"profit_percent"`
	InvoiceDate   string  `gorm:"size:10;not null;index" json:"invoice_date"`
}

func (ProfitSummary) TableName() string { return "profit_summary" }
