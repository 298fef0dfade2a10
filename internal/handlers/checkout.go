package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/smartpos/smartposgo/internal/middleware"
	"github.com/smartpos/smartposgo/internal/pos"
	"github.com/smartpos/smartposgo/internal/receipt"
	"github.com/smartpos/smartposgo/internal/store"
)

// CheckoutRequest completes the active cart as a sale
type CheckoutRequest struct {
	CustomerID    *string `json:"customerId"` // nil means walk-in
	PaymentMethod string  `json:"paymentMethod"`
}

// completeCheckout turns the active cart into a completed transaction,
// queues it for upstream replay, and nudges the sync engine
func (r *Router) completeCheckout(w http.ResponseWriter, req *http.Request) {
	var checkoutReq CheckoutRequest
	if err := json.NewDecoder(req.Body).Decode(&checkoutReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if checkoutReq.PaymentMethod == "" {
		checkoutReq.PaymentMethod = "cash"
	}

	txn, items, err := r.checkout.Complete(claimsUserID(req), checkoutReq.CustomerID, checkoutReq.PaymentMethod)
	if errors.Is(err, pos.ErrEmptyCart) {
		respondError(w, http.StatusBadRequest, "Cart is empty")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Checkout failed")
		return
	}

	r.engine.RequestSync()

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"transaction": txn,
		"items":       items,
	})
}

// listTransactions returns local transactions, newest first
func (r *Router) listTransactions(w http.ResponseWriter, req *http.Request) {
	txns, err := r.store.GetTransactions()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	respondJSON(w, http.StatusOK, txns)
}

// getTransaction returns one transaction with its line items
func (r *Router) getTransaction(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	txn, items, err := r.store.GetTransaction(vars["id"])
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch transaction")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"transaction": txn,
		"items":       items,
	})
}

// getReceipt renders a transaction's receipt as a PDF
func (r *Router) getReceipt(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	txn, items, err := r.store.GetTransaction(vars["id"])
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch transaction")
		return
	}

	data := receipt.Data{
		Transaction: *txn,
		Items:       items,
		Settings:    pos.StoreSettingsFor(r.store),
	}
	if txn.CustomerID != nil {
		if c, err := r.store.GetCustomer(*txn.CustomerID); err == nil {
			data.Customer = c
		}
	}

	pdfBytes, err := receipt.Generate(data)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline; filename=\""+txn.TransactionNumber+".pdf\"")
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}

// claimsUserID pulls the cashier ID out of the request's token claims
func claimsUserID(req *http.Request) string {
	claims, ok := req.Context().Value(middleware.UserContextKey).(jwt.MapClaims)
	if !ok {
		return ""
	}
	id, _ := claims["id"].(string)
	return id
}
