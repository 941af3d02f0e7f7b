package services

import (
	"errors"
	"strings"

	"github.com/nmalik/gobilling/internal/models"

	"gorm.io/gorm"
)

// CatalogService manages the reference product catalog.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService { return &CatalogService{DB: db} }

// MarginPercent is (selling - cost) / selling * 100, zero when selling is zero.
func MarginPercent(cost, selling float64) float64 {
	if selling == 0 {
		return 0
	}
	return (selling - cost) / selling * 100
}

// Add creates a catalog entry with the margin computed at write time.
// Uniqueness is enforced by the store's constraint, not a check-then-insert;
// a name collision yields ErrDuplicateProduct and leaves the existing row
// untouched.
func (s *CatalogService) Add(name string, costPrice, sellingPrice float64) (*models.Product, error) {
	p := models.Product{
		Name:          strings.TrimSpace(name),
		CostPrice:     costPrice,
		SellingPrice:  sellingPrice,
		MarginPercent: MarginPercent(costPrice, sellingPrice),
	}
	if err := s.DB.Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateErr(err) {
			return nil, ErrDuplicateProduct
		}
		return nil, err
	}
	return &p, nil
}

// List returns the catalog alphabetically by product name.
func (s *CatalogService) List() ([]models.Product, error) {
	products := []models.Product{}
	if err := s.DB.Order("name asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func isDuplicateErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
