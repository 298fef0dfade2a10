package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/smartpos/smartposgo/internal/models"
	"github.com/smartpos/smartposgo/internal/store"
	possync "github.com/smartpos/smartposgo/internal/sync"
)

// listProducts returns the cached product catalog
func (r *Router) listProducts(w http.ResponseWriter, req *http.Request) {
	products, err := r.store.GetProducts()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// searchProducts matches name, SKU, or barcode against the cache
func (r *Router) searchProducts(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Missing query parameter 'q'")
		return
	}
	products, err := r.store.SearchProducts(query)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to search products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// getProduct returns one cached product
func (r *Router) getProduct(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	p, err := r.store.GetProduct(vars["id"])
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// createProduct stores a product locally and queues it for upstream replay
func (r *Router) createProduct(w http.ResponseWriter, req *http.Request) {
	var p models.Product
	if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := r.store.PutProduct(p); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save product")
		return
	}
	r.enqueueProduct(models.ActionCreate, p)
	respondJSON(w, http.StatusCreated, p)
}

// updateProduct applies a local edit and queues it for upstream replay
func (r *Router) updateProduct(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	var p models.Product
	if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	p.ID = vars["id"]
	if err := r.store.PutProduct(p); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save product")
		return
	}
	r.enqueueProduct(models.ActionUpdate, p)
	respondJSON(w, http.StatusOK, p)
}

// deleteProduct removes a product locally and queues the delete for replay
func (r *Router) deleteProduct(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	p, err := r.store.GetProduct(vars["id"])
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}
	if err := r.store.DeleteProduct(p.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	r.enqueueProduct(models.ActionDelete, *p)
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// enqueueProduct records the edit in the pending queue and nudges the engine
func (r *Router) enqueueProduct(action models.MutationAction, p models.Product) {
	m, err := possync.NewProductMutation(action, p)
	if err != nil {
		return
	}
	if err := r.store.AddPendingMutation(m); err != nil {
		return
	}
	r.engine.RequestSync()
}
