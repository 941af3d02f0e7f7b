package handlers

import (
	"net/http"

	"github.com/nmalik/gobilling/internal/view"
)

// Index: GET / – the invoice entry form.
func Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if err := view.Render(w, r, "index.html", nil); err != nil {
		http.Error(w, "template render error: "+err.Error(), http.StatusInternalServerError)
	}
}
