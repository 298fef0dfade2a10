package sync

import (
	"context"
	"log"
	"sync"
	"time"
)

// Prober is the health probe the monitor uses to decide online state.
// Satisfied by remote.Client.
type Prober interface {
	Health(ctx context.Context) error
}

// Monitor is the single source of truth for "are we online" and "is a sync
// currently running". It polls the backend's /health endpoint instead of
// trusting platform network events; a reachable server is the only online
// signal that matters to the drain loop.
type Monitor struct {
	mu sync.RWMutex

	probe    Prober
	interval time.Duration

	isOnline       bool
	syncInProgress bool
	lastSync       time.Time

	onOnline func()

	running  bool
	stopChan chan struct{}
}

// NewMonitor creates a connectivity monitor probing at the given interval
func NewMonitor(probe Prober, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Monitor{
		probe:    probe,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// OnOnline registers the callback fired on each offline-to-online edge.
// Must be set before Start.
func (m *Monitor) OnOnline(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onOnline = fn
}

// Start begins probing in the background
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.mu.Unlock()

	// Establish initial state synchronously so startup decisions
	// (hydrate or not) see a real answer
	m.CheckNow()

	go m.probeLoop()
}

// Stop halts background probing
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	m.running = false
	close(m.stopChan)
}

// probeLoop periodically re-checks reachability
func (m *Monitor) probeLoop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CheckNow()
		case <-m.stopChan:
			return
		}
	}
}

// CheckNow probes the backend once and updates online state. Fires the
// OnOnline callback when the state flips from offline to online.
func (m *Monitor) CheckNow() bool {
	ctx, cancel := context.WithTimeout(context.Background(), m.interval)
	err := m.probe.Health(ctx)
	cancel()

	online := err == nil

	m.mu.Lock()
	wasOnline := m.isOnline
	m.isOnline = online
	callback := m.onOnline
	m.mu.Unlock()

	if online && !wasOnline {
		log.Println("🌐 Connection restored")
		if callback != nil {
			callback()
		}
	}
	if !online && wasOnline {
		log.Printf("📴 Connection lost: %v", err)
	}

	return online
}

// IsOnline returns the last probed reachability
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isOnline
}

// setSyncInProgress is flipped by the engine around each drain cycle
func (m *Monitor) setSyncInProgress(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncInProgress = v
	if !v {
		m.lastSync = time.Now()
	}
}

// Snapshot returns the pollable state; synchronous, cheap, safe to call on
// a 1-second UI poll
func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		IsOnline:       m.isOnline,
		SyncInProgress: m.syncInProgress,
		LastSync:       m.lastSync,
	}
}
