package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nmalik/gobilling/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Invoice{}, &models.InvoiceItem{}, &models.Product{}, &models.ProfitSummary{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db)
}

func TestHealthEndpoints(t *testing.T) {
	h := newRouter(t)
	for _, path := range []string{"/health", "/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Fatalf("%s: content type %s", path, ct)
		}
	}
}

func TestSaveInvoiceRequiresPost(t *testing.T) {
	h := newRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/save_invoice", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", w.Code)
	}
	if allow := w.Header().Get("Allow"); allow != "POST" {
		t.Fatalf("Allow header: %q", allow)
	}
}

func TestAddProductRequiresPost(t *testing.T) {
	h := newRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/add_product", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", w.Code)
	}
}

func TestUnknownPathIs404(t *testing.T) {
	h := newRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/no_such_page", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestGetProductsViaRouter(t *testing.T) {
	h := newRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/get_products", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
}
