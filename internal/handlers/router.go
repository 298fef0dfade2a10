package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/smartpos/smartposgo/internal/config"
	"github.com/smartpos/smartposgo/internal/middleware"
	"github.com/smartpos/smartposgo/internal/pos"
	"github.com/smartpos/smartposgo/internal/store"
	possync "github.com/smartpos/smartposgo/internal/sync"
	"github.com/smartpos/smartposgo/internal/websocket"
)

// Router wraps the mux router and the services the handlers need
type Router struct {
	*mux.Router
	cfg      *config.Config
	store    store.Store
	cart     *pos.Cart
	held     *pos.HeldSales
	checkout *pos.Checkout
	engine   *possync.Engine
	monitor  *possync.Monitor
	hub      *websocket.Hub
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(cfg *config.Config, st store.Store, engine *possync.Engine, monitor *possync.Monitor, hub *websocket.Hub) *Router {
	cart := pos.NewCart(st)
	r := &Router{
		Router:   mux.NewRouter(),
		cfg:      cfg,
		store:    st,
		cart:     cart,
		held:     pos.NewHeldSales(st, cart),
		checkout: pos.NewCheckout(st, cart),
		engine:   engine,
		monitor:  monitor,
		hub:      hub,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(cfg.JWTSecret))

	api.HandleFunc("/products", r.listProducts).Methods("GET")
	api.HandleFunc("/products", r.createProduct).Methods("POST")
	api.HandleFunc("/products/search", r.searchProducts).Methods("GET")
	api.HandleFunc("/products/{id}", r.getProduct).Methods("GET")
	api.HandleFunc("/products/{id}", r.updateProduct).Methods("PUT")
	api.HandleFunc("/products/{id}", r.deleteProduct).Methods("DELETE")

	api.HandleFunc("/customers", r.listCustomers).Methods("GET")
	api.HandleFunc("/customers", r.createCustomer).Methods("POST")
	api.HandleFunc("/customers/{id}", r.getCustomer).Methods("GET")
	api.HandleFunc("/customers/{id}", r.updateCustomer).Methods("PUT")
	api.HandleFunc("/customers/{id}", r.deleteCustomer).Methods("DELETE")

	api.HandleFunc("/cart", r.getCart).Methods("GET")
	api.HandleFunc("/cart/items", r.addCartItem).Methods("POST")
	api.HandleFunc("/cart/items/{id}", r.updateCartItem).Methods("PUT")
	api.HandleFunc("/cart/items/{id}", r.removeCartItem).Methods("DELETE")
	api.HandleFunc("/cart", r.clearCart).Methods("DELETE")

	api.HandleFunc("/hold", r.holdSale).Methods("POST")
	api.HandleFunc("/held", r.listHeldSales).Methods("GET")
	api.HandleFunc("/held/{id}/restore", r.restoreHeldSale).Methods("POST")
	api.HandleFunc("/held/{id}", r.discardHeldSale).Methods("DELETE")

	api.HandleFunc("/checkout", r.completeCheckout).Methods("POST")

	api.HandleFunc("/transactions", r.listTransactions).Methods("GET")
	api.HandleFunc("/transactions/{id}", r.getTransaction).Methods("GET")
	api.HandleFunc("/transactions/{id}/receipt", r.getReceipt).Methods("GET")

	api.HandleFunc("/sync/status", r.syncStatus).Methods("GET")
	api.HandleFunc("/sync/now", r.syncNow).Methods("POST")

	api.HandleFunc("/settings", r.getSettings).Methods("GET")
	api.HandleFunc("/settings", r.updateSettings).Methods("PUT")

	// WebSocket endpoint for register status pushes
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWs(hub, w, req)
	})

	// Static files for the register frontend
	frontendDir := os.Getenv("FRONTEND_DIR")
	if frontendDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(frontendDir)))
	}

	return r
}

// healthCheck returns the health status of the register service
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	status := "ok"
	if !r.store.Ready() {
		status = "degraded"
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status": status,
		"server": "local",
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
