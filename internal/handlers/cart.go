package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/smartpos/smartposgo/internal/pos"
	"github.com/smartpos/smartposgo/internal/store"
)

// AddItemRequest adds a product to the active cart
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateItemRequest changes a cart line's quantity
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// getCart returns the active cart lines plus the running totals
func (r *Router) getCart(w http.ResponseWriter, req *http.Request) {
	items, err := r.cart.Items()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}
	settings := pos.StoreSettingsFor(r.store)
	summary, err := r.cart.Summary(settings.TaxRate)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to total cart")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":   items,
		"summary": summary,
	})
}

// addCartItem adds a product to the cart, bumping the line if it exists
func (r *Router) addCartItem(w http.ResponseWriter, req *http.Request) {
	var addReq AddItemRequest
	if err := json.NewDecoder(req.Body).Decode(&addReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if addReq.Quantity == 0 {
		addReq.Quantity = 1
	}

	p, err := r.store.GetProduct(addReq.ProductID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	item, err := r.cart.Add(*p, addReq.Quantity)
	if errors.Is(err, pos.ErrQuantityInvalid) {
		respondError(w, http.StatusBadRequest, "Quantity must be positive")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to add item")
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// updateCartItem changes a line's quantity; zero or less removes the line
func (r *Router) updateCartItem(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	var updateReq UpdateItemRequest
	if err := json.NewDecoder(req.Body).Decode(&updateReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := r.cart.UpdateQuantity(vars["id"], updateReq.Quantity); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Cart item not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update item")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// removeCartItem deletes one line from the cart
func (r *Router) removeCartItem(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	if err := r.cart.Remove(vars["id"]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Cart item not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to remove item")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// clearCart empties the active cart
func (r *Router) clearCart(w http.ResponseWriter, req *http.Request) {
	if err := r.cart.Clear(); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
