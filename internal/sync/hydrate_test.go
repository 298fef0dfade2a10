package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/smartpos/smartposgo/internal/models"
	"github.com/smartpos/smartposgo/internal/remote"
	"github.com/smartpos/smartposgo/internal/store"
)

// refDataBackend serves mutable product/customer lists
type refDataBackend struct {
	mu        sync.Mutex
	products  []models.Product
	customers []models.Customer
	failAll   bool
}

func (b *refDataBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		b.serveList(w, func() interface{} { return b.products })
	})
	mux.HandleFunc("/customers", func(w http.ResponseWriter, r *http.Request) {
		b.serveList(w, func() interface{} { return b.customers })
	})
	return mux
}

func (b *refDataBackend) serveList(w http.ResponseWriter, list func() interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failAll {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list())
}

func newTestHydrator(t *testing.T, backend *refDataBackend) (*Hydrator, *store.MemoryStore) {
	t.Helper()

	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	st := store.NewMemoryStore()
	if err := st.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}

	client := remote.NewClient(srv.URL, "", 2)
	monitor := NewMonitor(client, time.Second)
	monitor.CheckNow()

	return NewHydrator(st, client, monitor, time.Hour), st
}

func TestHydrationOverwritesCache(t *testing.T) {
	backend := &refDataBackend{
		products: []models.Product{
			{ID: "p1", Name: "Rice", SKU: "GRN-001", Price: "1250"},
			{ID: "p2", Name: "Oil", SKU: "GRN-002", Price: "560"},
		},
		customers: []models.Customer{
			{ID: "c1", Name: "Ahmed Khan"},
		},
	}
	hydrator, st := newTestHydrator(t, backend)

	hydrator.RunOnce(context.Background())

	products, _ := st.GetProducts()
	if len(products) != 2 {
		t.Fatalf("expected 2 products after first pull, got %d", len(products))
	}
	customers, _ := st.GetCustomers()
	if len(customers) != 1 {
		t.Fatalf("expected 1 customer after first pull, got %d", len(customers))
	}

	// Server-side price change plus a new product; the next pull wins
	backend.mu.Lock()
	backend.products[1].Price = "600"
	backend.products = append(backend.products, models.Product{ID: "p3", Name: "Milk", SKU: "DRY-001", Price: "230"})
	backend.mu.Unlock()

	hydrator.RunOnce(context.Background())

	products, _ = st.GetProducts()
	if len(products) != 3 {
		t.Fatalf("expected 3 products after second pull, got %d", len(products))
	}
	oil, err := st.GetProduct("p2")
	if err != nil {
		t.Fatalf("fetch p2: %v", err)
	}
	if oil.Price != "600" {
		t.Errorf("expected updated price 600, got %s", oil.Price)
	}
}

func TestHydrationRunOnceIsIdempotent(t *testing.T) {
	backend := &refDataBackend{
		products: []models.Product{{ID: "p1", Name: "Rice", SKU: "GRN-001", Price: "1250"}},
	}
	hydrator, st := newTestHydrator(t, backend)

	hydrator.RunOnce(context.Background())
	hydrator.RunOnce(context.Background())

	products, _ := st.GetProducts()
	if len(products) != 1 {
		t.Fatalf("repeated pulls must not duplicate rows, got %d", len(products))
	}
}

func TestHydrationKeepsCacheOnPullFailure(t *testing.T) {
	backend := &refDataBackend{
		products: []models.Product{{ID: "p1", Name: "Rice", SKU: "GRN-001", Price: "1250"}},
	}
	hydrator, st := newTestHydrator(t, backend)
	hydrator.RunOnce(context.Background())

	backend.mu.Lock()
	backend.failAll = true
	backend.mu.Unlock()

	hydrator.RunOnce(context.Background())

	products, _ := st.GetProducts()
	if len(products) != 1 {
		t.Fatalf("a failed pull must leave the cache intact, got %d products", len(products))
	}
}

func TestHydrationSkipsUnreadyStore(t *testing.T) {
	backend := &refDataBackend{
		products: []models.Product{{ID: "p1", Name: "Rice", SKU: "GRN-001"}},
	}

	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	st := store.NewMemoryStore() // Init never called
	client := remote.NewClient(srv.URL, "", 2)
	monitor := NewMonitor(client, time.Second)
	monitor.CheckNow()

	hydrator := NewHydrator(st, client, monitor, time.Hour)
	hydrator.RunOnce(context.Background())

	if err := st.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}
	products, _ := st.GetProducts()
	if len(products) != 0 {
		t.Fatalf("pull before init should be skipped, got %d products", len(products))
	}
}
