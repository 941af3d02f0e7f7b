package services

import (
	"errors"
	"time"

	"github.com/nmalik/gobilling/internal/models"

	"gorm.io/gorm"
)

// InvoiceSummary is one row of the history listing.
type InvoiceSummary struct {
	ID           uint      `json:"id"`
	CustomerName string    `json:"customer_name"`
	CreatedAt    time.Time `json:"created_at"`
	Total        float64   `json:"total"`
	Profit       float64   `json:"profit"`
}

// QueryService is the read side: history, detail, never writes.
type QueryService struct {
	DB *gorm.DB
}

func NewQueryService(db *gorm.DB) *QueryService { return &QueryService{DB: db} }

// ListInvoices returns all invoices newest first (id descending) with the
// summary profit joined in; invoices without a summary row report zero profit.
func (s *QueryService) ListInvoices() ([]InvoiceSummary, error) {
	rows := []InvoiceSummary{}
	err := s.DB.Table("invoices").
		Select("invoices.id, invoices.customer_name, invoices.created_at, invoices.total, COALESCE(ps.total_profit, 0) AS profit").
		Joins("LEFT JOIN profit_summary ps ON ps.invoice_id = invoices.id").
		Order("invoices.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetInvoice loads one invoice with its items and, when present, its profit
// summary. An unknown id is ErrNotFound, a distinct user-visible outcome.
func (s *QueryService) GetInvoice(id uint) (*models.Invoice, []models.InvoiceItem, *models.ProfitSummary, error) {
	var inv models.Invoice
	if err := s.DB.First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrNotFound
		}
		return nil, nil, nil, err
	}
	var items []models.InvoiceItem
	if err := s.DB.Where("invoice_id = ?", id).Order("id asc").Find(&items).Error; err != nil {
		return nil, nil, nil, err
	}
	var summary models.ProfitSummary
	if err := s.DB.Where("invoice_id = ?", id).First(&summary).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, err
		}
		return &inv, items, nil, nil
	}
	return &inv, items, &summary, nil
}
