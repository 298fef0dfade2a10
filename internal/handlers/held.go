package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/smartpos/smartposgo/internal/pos"
	"github.com/smartpos/smartposgo/internal/store"
)

// HoldRequest parks the active cart as a held sale
type HoldRequest struct {
	CustomerID    *string `json:"customerId"`
	PaymentMethod string  `json:"paymentMethod"`
}

// listHeldSales returns all parked sales, newest first
func (r *Router) listHeldSales(w http.ResponseWriter, req *http.Request) {
	sales, err := r.held.List()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch held sales")
		return
	}
	respondJSON(w, http.StatusOK, sales)
}

// holdSale parks the current cart and clears it for the next customer
func (r *Router) holdSale(w http.ResponseWriter, req *http.Request) {
	var holdReq HoldRequest
	if req.ContentLength > 0 {
		if err := json.NewDecoder(req.Body).Decode(&holdReq); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid payload")
			return
		}
	}
	sale, err := r.held.Hold(holdReq.CustomerID, holdReq.PaymentMethod)
	if errors.Is(err, pos.ErrEmptyCart) {
		respondError(w, http.StatusBadRequest, "Cart is empty")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hold sale")
		return
	}
	respondJSON(w, http.StatusCreated, sale)
}

// restoreHeldSale loads a parked sale back into the active cart. The sale
// leaves the held list first, so a double restore returns 404 the second time.
func (r *Router) restoreHeldSale(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	sale, err := r.held.Restore(vars["id"])
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Held sale not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to restore sale")
		return
	}
	respondJSON(w, http.StatusOK, sale)
}

// discardHeldSale drops a parked sale without restoring it
func (r *Router) discardHeldSale(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	if err := r.held.Discard(vars["id"]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Held sale not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to discard sale")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "discarded"})
}
