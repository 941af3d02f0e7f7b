package services

import (
	"time"

	"github.com/nmalik/gobilling/internal/models"

	"gorm.io/gorm"
)

// Summarize derives the per-invoice profit aggregate from its items. Pure
// function of the item list; callers persist the result alongside the items.
func Summarize(invoiceID uint, date time.Time, items []models.InvoiceItem) models.ProfitSummary {
	var selling, cost float64
	for _, it := range items {
		selling += it.LineTotal
		cost += it.CostPrice * float64(it.Quantity)
	}
	profit := selling - cost
	pct := 0.0
	if selling != 0 {
		pct = profit / selling * 100
	}
	return models.ProfitSummary{
		InvoiceID:     invoiceID,
		TotalSelling:  selling,
		TotalCost:     cost,
		TotalProfit:   profit,
		ProfitPercent: pct,
		InvoiceDate:   date.Format("2006-01-02"),
	}
}

// ProfitService answers time-bucketed profit questions from stored summaries.
type ProfitService struct {
	DB *gorm.DB
}

func NewProfitService(db *gorm.DB) *ProfitService { return &ProfitService{DB: db} }

// ProfitForDay sums profit for one day ("2006-01-02"). Zero when no invoices.
func (s *ProfitService) ProfitForDay(day string) (float64, error) {
	return s.sumWhere("invoice_date = ?", day)
}

// ProfitForMonth sums profit for one month ("2006-01").
func (s *ProfitService) ProfitForMonth(yearMonth string) (float64, error) {
	return s.sumWhere("invoice_date LIKE ?", yearMonth+"-%")
}

// ProfitForYear sums profit for one year ("2006").
func (s *ProfitService) ProfitForYear(year string) (float64, error) {
	return s.sumWhere("invoice_date LIKE ?", year+"-%")
}

func (s *ProfitService) sumWhere(cond string, arg string) (float64, error) {
	var total float64
	err := s.DB.Model(&models.ProfitSummary{}).
		Select("COALESCE(SUM(total_profit), 0)").
		Where(cond, arg).
		Scan(&total).Error
	return total, err
}

// DashboardData bundles the aggregates shown on the profit dashboard.
type DashboardData struct {
	Today        float64
	ThisMonth    float64
	ThisYear     float64
	AllTime      float64
	TotalSelling float64
	InvoiceCount int64
}

// Dashboard computes the day/month/year aggregates relative to now plus
// overall totals.
func (s *ProfitService) Dashboard(now time.Time) (DashboardData, error) {
	var d DashboardData
	var err error
	if d.Today, err = s.ProfitForDay(now.Format("2006-01-02")); err != nil {
		return d, err
	}
	if d.ThisMonth, err = s.ProfitForMonth(now.Format("2006-01")); err != nil {
		return d, err
	}
	if d.ThisYear, err = s.ProfitForYear(now.Format("2006")); err != nil {
		return d, err
	}
	if err = s.DB.Model(&models.ProfitSummary{}).
		Select("COALESCE(SUM(total_profit), 0)").Scan(&d.AllTime).Error; err != nil {
		return d, err
	}
	if err = s.DB.Model(&models.ProfitSummary{}).
		Select("COALESCE(SUM(total_selling), 0)").Scan(&d.TotalSelling).Error; err != nil {
		return d, err
	}
	err = s.DB.Model(&models.Invoice{}).Count(&d.InvoiceCount).Error
	return d, err
}
