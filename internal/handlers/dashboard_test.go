package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestProfitDashboardJSON(t *testing.T) {
	db := setupTestDB(t)
	ih := NewInvoiceHandler(db)
	dh := NewDashboardHandler(db)

	body := `{"items":[{"product_name":"Widget","quantity":3,"rate":10.0,"cost_price":4.0}]}`
	saveReq := httptest.NewRequest(http.MethodPost, "/save_invoice", strings.NewReader(body))
	saveReq.Header.Set("Content-Type", "application/json")
	saveW := httptest.NewRecorder()
	ih.Save(saveW, saveReq)
	if saveW.Code != http.StatusOK {
		t.Fatalf("save got %d", saveW.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/profit_dashboard", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	dh.Show(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Today        float64 `json:"today"`
		ThisMonth    float64 `json:"this_month"`
		ThisYear     float64 `json:"this_year"`
		InvoiceCount int64   `json:"invoice_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Today != 18.0 || resp.ThisMonth != 18.0 || resp.ThisYear != 18.0 {
		t.Fatalf("aggregates: %+v", resp)
	}
	if resp.InvoiceCount != 1 {
		t.Fatalf("invoice count: %+v", resp)
	}
}

func TestProfitDashboardEmptyIsZero(t *testing.T) {
	db := setupTestDB(t)
	dh := NewDashboardHandler(db)

	req := httptest.NewRequest(http.MethodGet, "/profit_dashboard", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	dh.Show(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var resp map[string]float64
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["today"] != 0 || resp["all_time"] != 0 {
		t.Fatalf("expected zeros: %#v", resp)
	}
}
