package sync

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/smartpos/smartposgo/internal/remote"
	"github.com/smartpos/smartposgo/internal/store"
)

// Hydrator keeps the local product/customer cache fresh for offline use:
// full-list pulls with overwrite, no deltas. Products and customers are
// low-cardinality reference data, so last-pull-wins is the whole
// consistency model.
type Hydrator struct {
	store    store.Store
	api      *remote.Client
	monitor  *Monitor
	interval time.Duration

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
}

// NewHydrator creates a cache hydrator pulling at the given interval
func NewHydrator(st store.Store, api *remote.Client, monitor *Monitor, interval time.Duration) *Hydrator {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Hydrator{
		store:    st,
		api:      api,
		monitor:  monitor,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins background hydration. When hydrateNow is set and the backend
// is reachable, an immediate pull runs first; an offline start just serves
// whatever is already cached.
func (h *Hydrator) Start(hydrateNow bool) {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	go func() {
		if hydrateNow {
			if h.monitor.IsOnline() {
				h.RunOnce(context.Background())
			} else {
				log.Println("📴 Hydration: offline at startup, serving cached data")
			}
		}

		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if h.monitor.IsOnline() {
					h.RunOnce(context.Background())
				}
			case <-h.stopChan:
				return
			}
		}
	}()
}

// Stop halts background hydration
func (h *Hydrator) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		return
	}
	h.running = false
	close(h.stopChan)
}

// RunOnce pulls the full product and customer lists and overwrites the local
// cache. Each list failure is logged and skipped; a partial pull is better
// than none.
func (h *Hydrator) RunOnce(ctx context.Context) {
	if !h.store.Ready() {
		return
	}

	log.Println("📥 Hydration: pulling reference data...")

	products, err := h.api.ListProducts(ctx)
	if err != nil {
		log.Printf("⚠️ Hydration: products pull failed: %v", err)
	} else if err := h.store.SaveProducts(products); err != nil {
		log.Printf("⚠️ Hydration: products save failed: %v", err)
	} else {
		log.Printf("✅ Hydration: %d product(s) cached", len(products))
	}

	customers, err := h.api.ListCustomers(ctx)
	if err != nil {
		log.Printf("⚠️ Hydration: customers pull failed: %v", err)
	} else if err := h.store.SaveCustomers(customers); err != nil {
		log.Printf("⚠️ Hydration: customers save failed: %v", err)
	} else {
		log.Printf("✅ Hydration: %d customer(s) cached", len(customers))
	}
}
