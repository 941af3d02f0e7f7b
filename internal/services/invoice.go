package services

import (
	"strings"
	"time"

	"github.com/nmalik/gobilling/internal/models"

	"gorm.io/gorm"
)

// RawItem is the client-supplied shape of an invoice line. LineTotal is
// accepted for wire compatibility but ignored; the server recomputes it.
type RawItem struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Rate        float64 `json:"rate"`
	CostPrice   float64 `json:"cost_price"`
	LineTotal   float64 `json:"line_total"`
}

type CreateInvoiceInput struct {
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Items         []RawItem `json:"items"`
	// Total is informational only; the persisted total is always the sum of
	// the recomputed line totals.
	Total float64 `json:"total"`
}

// InvoiceService builds and persists invoices from validated raw input.
type InvoiceService struct {
	DB *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService { return &InvoiceService{DB: db} }

// BuildItems recomputes the derived fields of every line from its raw
// quantity/rate/cost and returns the items plus the invoice total.
func BuildItems(raw []RawItem) ([]models.InvoiceItem, float64) {
	items := make([]models.InvoiceItem, 0, len(raw))
	var total float64
	for _, r := range raw {
		lineTotal := r.Rate * float64(r.Quantity)
		item := models.InvoiceItem{
			ProductName: strings.TrimSpace(r.ProductName),
			Quantity:    r.Quantity,
			Rate:        r.Rate,
			CostPrice:   r.CostPrice,
			LineTotal:   lineTotal,
			Profit:      lineTotal - r.CostPrice*float64(r.Quantity),
		}
		items = append(items, item)
		total += lineTotal
	}
	return items, total
}

// Create persists the invoice, its items and the profit summary as one
// transaction. Nothing is visible to readers unless every row was written.
// Returns the stored invoice and its total profit.
func (s *InvoiceService) Create(input CreateInvoiceInput) (*models.Invoice, float64, error) {
	if len(input.Items) == 0 {
		return nil, 0, ErrNoItems
	}
	items, total := BuildItems(input.Items)

	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		name = "Unknown Customer"
	}
	now := time.Now().Truncate(time.Second)
	inv := models.Invoice{
		CustomerName:  name,
		CustomerEmail: strings.TrimSpace(input.CustomerEmail),
		CreatedAt:     now,
		Total:         total,
	}

	var summary models.ProfitSummary
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].InvoiceID = inv.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		summary = Summarize(inv.ID, now, items)
		return tx.Create(&summary).Error
	})
	if err != nil {
		return nil, 0, err
	}
	inv.Items = items
	return &inv, summary.TotalProfit, nil
}
