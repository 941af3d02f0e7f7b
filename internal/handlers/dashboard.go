package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/nmalik/gobilling/internal/httpx"
	"github.com/nmalik/gobilling/internal/services"
	"github.com/nmalik/gobilling/internal/view"

	"gorm.io/gorm"
)

type DashboardHandler struct {
	Profit *services.ProfitService
}

func NewDashboardHandler(dbConn *gorm.DB) *DashboardHandler {
	return &DashboardHandler{Profit: services.NewProfitService(dbConn)}
}

// Show: GET /profit_dashboard – daily/monthly/yearly profit totals.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	data, err := h.Profit.Dashboard(time.Now())
	if err != nil {
		log.Printf("profit dashboard failed: %v", err)
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_dashboard", nil)
			return
		}
		http.Error(w, "Error loading dashboard", http.StatusInternalServerError)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"today":         data.Today,
			"this_month":    data.ThisMonth,
			"this_year":     data.ThisYear,
			"all_time":      data.AllTime,
			"total_selling": data.TotalSelling,
			"invoice_count": data.InvoiceCount,
		})
		return
	}
	if err := view.Render(w, r, "profit_dashboard.html", map[string]any{"Dashboard": data}); err != nil {
		http.Error(w, "template render error: "+err.Error(), http.StatusInternalServerError)
	}
}
