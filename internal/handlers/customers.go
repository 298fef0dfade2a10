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

// listCustomers returns the cached customer list
func (r *Router) listCustomers(w http.ResponseWriter, req *http.Request) {
	customers, err := r.store.GetCustomers()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

// getCustomer returns one cached customer
func (r *Router) getCustomer(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	c, err := r.store.GetCustomer(vars["id"])
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Customer not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch customer")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// createCustomer stores a customer locally and queues it for upstream replay
func (r *Router) createCustomer(w http.ResponseWriter, req *http.Request) {
	var c models.Customer
	if err := json.NewDecoder(req.Body).Decode(&c); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := r.store.PutCustomer(c); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save customer")
		return
	}
	r.enqueueCustomer(models.ActionCreate, c)
	respondJSON(w, http.StatusCreated, c)
}

// updateCustomer applies a local edit and queues it for upstream replay
func (r *Router) updateCustomer(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	var c models.Customer
	if err := json.NewDecoder(req.Body).Decode(&c); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	c.ID = vars["id"]
	if err := r.store.PutCustomer(c); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save customer")
		return
	}
	r.enqueueCustomer(models.ActionUpdate, c)
	respondJSON(w, http.StatusOK, c)
}

// deleteCustomer removes a customer locally and queues the delete for replay
func (r *Router) deleteCustomer(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	c, err := r.store.GetCustomer(vars["id"])
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Customer not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch customer")
		return
	}
	if err := r.store.DeleteCustomer(c.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete customer")
		return
	}
	r.enqueueCustomer(models.ActionDelete, *c)
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (r *Router) enqueueCustomer(action models.MutationAction, c models.Customer) {
	m, err := possync.NewCustomerMutation(action, c)
	if err != nil {
		return
	}
	if err := r.store.AddPendingMutation(m); err != nil {
		return
	}
	r.engine.RequestSync()
}
