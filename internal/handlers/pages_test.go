package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestIndexRendersEntryForm(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	Index(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "invoice-form") {
		t.Fatalf("entry form missing from page")
	}
}

func TestHistoryRendersHTML(t *testing.T) {
	db := setupTestDB(t)
	h := NewInvoiceHandler(db)

	body := `{"customer_name":"Acme","items":[{"product_name":"Widget","quantity":1,"rate":2}]}`
	saveReq := httptest.NewRequest(http.MethodPost, "/save_invoice", strings.NewReader(body))
	saveReq.Header.Set("Content-Type", "application/json")
	saveW := httptest.NewRecorder()
	h.Save(saveW, saveReq)
	if saveW.Code != http.StatusOK {
		t.Fatalf("save got %d", saveW.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	w := httptest.NewRecorder()
	h.History(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Acme") {
		t.Fatalf("customer missing from history page")
	}
}

func TestInvoiceDetailRendersHTML(t *testing.T) {
	db := setupTestDB(t)
	h := NewInvoiceHandler(db)

	body := `{"customer_name":"Acme","items":[{"product_name":"Widget","quantity":3,"rate":10,"cost_price":4}]}`
	saveReq := httptest.NewRequest(http.MethodPost, "/save_invoice", strings.NewReader(body))
	saveReq.Header.Set("Content-Type", "application/json")
	saveW := httptest.NewRecorder()
	h.Save(saveW, saveReq)
	if saveW.Code != http.StatusOK {
		t.Fatalf("save got %d", saveW.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/invoice/1", nil)
	w := httptest.NewRecorder()
	h.Detail(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	page := w.Body.String()
	if !strings.Contains(page, "Widget") || !strings.Contains(page, "30.00") {
		t.Fatalf("line item missing from detail page")
	}
}

func TestProductsPageRendersHTML(t *testing.T) {
	db := setupTestDB(t)
	h := NewProductHandler(db)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	h.List(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "No products yet") {
		t.Fatalf("empty state missing from products page")
	}
}

func TestDashboardRendersHTML(t *testing.T) {
	db := setupTestDB(t)
	h := NewDashboardHandler(db)

	req := httptest.NewRequest(http.MethodGet, "/profit_dashboard", nil)
	w := httptest.NewRecorder()
	h.Show(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Profit Dashboard") {
		t.Fatalf("heading missing from dashboard page")
	}
}
