package services

import (
	"fmt"
	"testing"

	"github.com/nmalik/gobilling/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Invoice{}, &models.InvoiceItem{}, &models.Product{}, &models.ProfitSummary{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
