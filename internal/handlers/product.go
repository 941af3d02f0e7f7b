package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/nmalik/gobilling/internal/httpx"
	"github.com/nmalik/gobilling/internal/services"
	"github.com/nmalik/gobilling/internal/validation"
	"github.com/nmalik/gobilling/internal/view"

	"gorm.io/gorm"
)

type ProductHandler struct {
	DB      *gorm.DB
	Catalog *services.CatalogService
}

func NewProductHandler(dbConn *gorm.DB) *ProductHandler {
	return &ProductHandler{DB: dbConn, Catalog: services.NewCatalogService(dbConn)}
}

// Add: POST /add_product – JSON.
// Responds {success, product_id} or a client error for bad input/duplicates.
func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	ensureSchema(h.DB)
	var input struct {
		ProductName  string  `json:"product_name"`
		CostPrice    float64 `json:"cost_price"`
		SellingPrice float64 `json:"selling_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "invalid JSON payload"})
		return
	}
	v := validation.Violations{}
	validation.Required("product_name", input.ProductName, v)
	validation.NonNegativeFloat("cost_price", input.CostPrice, v)
	validation.NonNegativeFloat("selling_price", input.SellingPrice, v)
	if !v.Empty() {
		httpx.JSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "invalid product", "errors": v})
		return
	}
	p, err := h.Catalog.Add(input.ProductName, input.CostPrice, input.SellingPrice)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateProduct) {
			httpx.JSON(w, http.StatusConflict, map[string]any{"success": false, "message": "Product already exists"})
			return
		}
		log.Printf("add_product failed: %v", err)
		httpx.JSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "failed to add product"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "product_id": p.ID})
}

// List: GET /products – HTML page, or JSON when requested via Accept.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.List()
	if err != nil {
		log.Printf("list products failed: %v", err)
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
			return
		}
		http.Error(w, "Error loading products", http.StatusInternalServerError)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, products)
		return
	}
	if err := view.Render(w, r, "products.html", map[string]any{"Products": products}); err != nil {
		http.Error(w, "template render error: "+err.Error(), http.StatusInternalServerError)
	}
}

// ListJSON: GET /get_products – always a JSON array.
func (h *ProductHandler) ListJSON(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.List()
	if err != nil {
		log.Printf("get_products failed: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}
