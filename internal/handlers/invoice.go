package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/nmalik/gobilling/internal/db"
	"github.com/nmalik/gobilling/internal/httpx"
	"github.com/nmalik/gobilling/internal/services"
	"github.com/nmalik/gobilling/internal/validation"
	"github.com/nmalik/gobilling/internal/view"

	"gorm.io/gorm"
)

// InvoiceHandler serves invoice submission, history and detail in the
// dual-format (HTML or JSON) pattern used across the app.
type InvoiceHandler struct {
	DB    *gorm.DB
	Svc   *services.InvoiceService
	Query *services.QueryService
}

func NewInvoiceHandler(dbConn *gorm.DB) *InvoiceHandler {
	return &InvoiceHandler{
		DB:    dbConn,
		Svc:   services.NewInvoiceService(dbConn),
		Query: services.NewQueryService(dbConn),
	}
}

// Save: POST /save_invoice – JSON only.
// Responds {success, invoice_id, profit} or {success:false, message}.
func (h *InvoiceHandler) Save(w http.ResponseWriter, r *http.Request) {
	ensureSchema(h.DB)
	var input services.CreateInvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "invalid JSON payload"})
		return
	}
	if len(input.Items) == 0 {
		httpx.JSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "No items to save"})
		return
	}
	v := validation.Violations{}
	for i, it := range input.Items {
		prefix := "items[" + strconv.Itoa(i) + "]."
		validation.Required(prefix+"product_name", it.ProductName, v)
		validation.NonNegativeInt(prefix+"quantity", it.Quantity, v)
		validation.NonNegativeFloat(prefix+"rate", it.Rate, v)
		validation.NonNegativeFloat(prefix+"cost_price", it.CostPrice, v)
	}
	if !v.Empty() {
		httpx.JSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "invalid items", "errors": v})
		return
	}

	inv, profit, err := h.Svc.Create(input)
	if err != nil {
		if errors.Is(err, services.ErrNoItems) {
			httpx.JSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "No items to save"})
			return
		}
		log.Printf("save_invoice failed: %v", err)
		httpx.JSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "failed to save invoice"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "invoice_id": inv.ID, "profit": profit})
}

// History: GET /history – HTML page, or JSON when requested via Accept.
func (h *InvoiceHandler) History(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Query.ListInvoices()
	if err != nil {
		log.Printf("history failed: %v", err)
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
			return
		}
		http.Error(w, "Error loading history", http.StatusInternalServerError)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, invoices)
		return
	}
	if err := view.Render(w, r, "history.html", map[string]any{"Invoices": invoices}); err != nil {
		http.Error(w, "template render error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Detail: GET /invoice/{id} – HTML page or 404.
func (h *InvoiceHandler) Detail(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/invoice/")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
			return
		}
		http.Error(w, "Invalid invoice id", http.StatusBadRequest)
		return
	}
	inv, items, summary, err := h.Query.GetInvoice(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			if wantsJSON(r) {
				httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
				return
			}
			http.Error(w, "Invoice not found", http.StatusNotFound)
			return
		}
		log.Printf("invoice detail failed: %v", err)
		http.Error(w, "Error loading invoice", http.StatusInternalServerError)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"invoice": inv, "items": items, "summary": summary})
		return
	}
	data := map[string]any{"Invoice": inv, "Items": items, "Summary": summary}
	if err := view.Render(w, r, "invoice_detail.html", data); err != nil {
		http.Error(w, "template render error: "+err.Error(), http.StatusInternalServerError)
	}
}

// wantsJSON reports whether the client asked for JSON explicitly.
func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

// ensureSchema runs idempotent table setup before writes, mirroring the
// original per-request behavior. Failures are logged and deferred: the write
// itself reports the real storage error.
func ensureSchema(conn *gorm.DB) {
	if err := db.EnsureSchema(conn); err != nil {
		log.Printf("ensure schema: %v", err)
	}
}
