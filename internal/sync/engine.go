// Package sync reconciles the register's pending-mutation queue with the
// backend: a connectivity-gated FIFO drain with idempotent replay, plus the
// monitor and cache hydrator that feed it.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/smartpos/smartposgo/internal/models"
	"github.com/smartpos/smartposgo/internal/remote"
	"github.com/smartpos/smartposgo/internal/store"
)

// Engine drains the pending-mutation queue against the backend. One explicit
// long-lived service object constructed at process start; never a package
// singleton.
type Engine struct {
	mu sync.Mutex

	store   store.Store
	api     *remote.Client
	monitor *Monitor

	drainInterval time.Duration

	isRunning      bool
	syncInProgress bool

	onDrained func(DrainResult)

	stopChan chan struct{}
	syncChan chan struct{}
}

// NewEngine creates a sync engine over the local store and backend client
func NewEngine(st store.Store, api *remote.Client, monitor *Monitor, drainInterval time.Duration) *Engine {
	if drainInterval <= 0 {
		drainInterval = 30 * time.Second
	}
	return &Engine{
		store:         st,
		api:           api,
		monitor:       monitor,
		drainInterval: drainInterval,
		stopChan:      make(chan struct{}),
		// Buffer of one: a trigger arriving mid-drain is coalesced, any
		// further triggers are dropped and picked up by the next tick
		syncChan: make(chan struct{}, 1),
	}
}

// OnDrained registers a callback invoked after each drain cycle (used to
// push status to connected register UIs). Must be set before Start.
func (e *Engine) OnDrained(fn func(DrainResult)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onDrained = fn
}

// Start launches the background worker
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isRunning {
		return fmt.Errorf("sync engine already running")
	}
	e.isRunning = true

	go e.worker()
	log.Println("🔄 Sync Engine started")
	return nil
}

// Stop halts the background worker
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isRunning {
		return
	}
	e.isRunning = false
	close(e.stopChan)
	log.Println("🛑 Sync Engine stopped")
}

// RequestSync asks for a drain cycle ("sync now"). Non-blocking; if a drain
// is already pending or running the request is dropped and the periodic tick
// retries.
func (e *Engine) RequestSync() {
	select {
	case e.syncChan <- struct{}{}:
	default:
	}
}

// worker serializes drain cycles from all triggers: manual requests, the
// periodic tick, and the monitor's offline-to-online edge (wired to
// RequestSync by the caller)
func (e *Engine) worker() {
	ticker := time.NewTicker(e.drainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.syncChan:
			e.Drain()
		case <-ticker.C:
			e.Drain()
		case <-e.stopChan:
			return
		}
	}
}

// Drain runs one pass over the pending queue, oldest first. Requires the
// store to be initialized and the monitor to report online; at most one
// drain is active at a time, process-wide; a second caller gets a no-op.
func (e *Engine) Drain() DrainResult {
	if !e.store.Ready() || !e.monitor.IsOnline() {
		return DrainResult{}
	}

	e.mu.Lock()
	if e.syncInProgress {
		e.mu.Unlock()
		return DrainResult{}
	}
	e.syncInProgress = true
	onDrained := e.onDrained
	e.mu.Unlock()

	e.monitor.setSyncInProgress(true)
	defer func() {
		e.mu.Lock()
		e.syncInProgress = false
		e.mu.Unlock()
		e.monitor.setSyncInProgress(false)
	}()

	start := time.Now()
	result := DrainResult{}

	pending, err := e.store.PendingMutations()
	if err != nil {
		log.Printf("⚠️ Sync: cannot read pending queue: %v", err)
		return result
	}
	if len(pending) == 0 {
		return result
	}

	log.Printf("🔄 Sync: draining %d pending mutation(s)", len(pending))

	for _, m := range pending {
		result.Attempted++

		if err := e.dispatch(m); err != nil {
			// Failure of one item must not block the rest of the queue
			result.Failed++
			log.Printf("⚠️ Sync: %s %s failed (attempt %d): %v", m.Kind, m.ID, m.RetryCount+1, err)
			if recErr := e.store.RecordMutationFailure(m.ID, err.Error()); recErr != nil {
				log.Printf("⚠️ Sync: could not record failure for %s: %v", m.ID, recErr)
			}
			continue
		}

		// Server acknowledged; the mutation is removed by identity
		if err := e.store.RemovePendingMutation(m.ID); err != nil {
			log.Printf("⚠️ Sync: could not dequeue %s: %v", m.ID, err)
			continue
		}
		result.Synced++
	}

	result.Duration = time.Since(start)
	log.Printf("✅ Sync: drain complete in %v (%d synced, %d failed)", result.Duration, result.Synced, result.Failed)

	if onDrained != nil {
		onDrained(result)
	}
	return result
}

// dispatch replays one mutation against the backend. The mutation ID rides
// along as the idempotency key on every attempt.
func (e *Engine) dispatch(m models.PendingMutation) error {
	ctx := context.Background()

	switch m.Kind {
	case models.MutationTransaction:
		var p TransactionPayload
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return fmt.Errorf("corrupt transaction payload: %w", err)
		}
		if err := e.api.CreateTransaction(ctx, m.ID, p.Transaction, p.Items); err != nil {
			return err
		}
		if err := e.store.MarkTransactionSynced(p.Transaction.ID); err != nil {
			log.Printf("⚠️ Sync: transaction %s acknowledged but not flagged locally: %v", p.Transaction.ID, err)
		}
		return nil

	case models.MutationProduct:
		var p ProductPayload
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return fmt.Errorf("corrupt product payload: %w", err)
		}
		switch p.Action {
		case models.ActionCreate:
			return e.api.CreateProduct(ctx, m.ID, p.Product)
		case models.ActionUpdate:
			return e.api.UpdateProduct(ctx, m.ID, p.Product)
		case models.ActionDelete:
			return e.api.DeleteProduct(ctx, m.ID, p.Product.ID)
		default:
			return fmt.Errorf("unknown product action %q", p.Action)
		}

	case models.MutationCustomer:
		var p CustomerPayload
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return fmt.Errorf("corrupt customer payload: %w", err)
		}
		switch p.Action {
		case models.ActionCreate:
			return e.api.CreateCustomer(ctx, m.ID, p.Customer)
		case models.ActionUpdate:
			return e.api.UpdateCustomer(ctx, m.ID, p.Customer)
		case models.ActionDelete:
			return e.api.DeleteCustomer(ctx, m.ID, p.Customer.ID)
		default:
			return fmt.Errorf("unknown customer action %q", p.Action)
		}

	default:
		return fmt.Errorf("unknown mutation kind %q", m.Kind)
	}
}

// Status returns the snapshot plus the pending count for the UI badge
func (e *Engine) Status() map[string]interface{} {
	snapshot := e.monitor.Snapshot()
	count, err := e.store.PendingCount()
	if err != nil {
		count = -1
	}
	return map[string]interface{}{
		"isOnline":       snapshot.IsOnline,
		"syncInProgress": snapshot.SyncInProgress,
		"lastSync":       snapshot.LastSync,
		"pendingCount":   count,
	}
}
