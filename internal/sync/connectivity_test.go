package sync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// stubProbe is a controllable Prober
type stubProbe struct {
	mu  sync.Mutex
	err error
}

func (p *stubProbe) Health(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *stubProbe) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func TestMonitorOnlineTransitions(t *testing.T) {
	probe := &stubProbe{}
	monitor := NewMonitor(probe, time.Second)

	var edges int
	monitor.OnOnline(func() { edges++ })

	// First successful probe is an offline-to-online edge
	if !monitor.CheckNow() {
		t.Fatal("expected online after successful probe")
	}
	if edges != 1 {
		t.Fatalf("expected 1 online edge, got %d", edges)
	}

	// Staying online fires no further callbacks
	monitor.CheckNow()
	if edges != 1 {
		t.Fatalf("repeat success should not fire callback, got %d edges", edges)
	}

	// Going offline fires nothing
	probe.setErr(errors.New("connection refused"))
	if monitor.CheckNow() {
		t.Fatal("expected offline after failed probe")
	}
	if monitor.IsOnline() {
		t.Fatal("IsOnline should report the last probe result")
	}
	if edges != 1 {
		t.Fatalf("offline transition should not fire the online callback, got %d", edges)
	}

	// Recovering fires the callback again
	probe.setErr(nil)
	monitor.CheckNow()
	if edges != 2 {
		t.Fatalf("expected 2 online edges after recovery, got %d", edges)
	}
}

func TestMonitorSnapshotTracksSync(t *testing.T) {
	monitor := NewMonitor(&stubProbe{}, time.Second)
	monitor.CheckNow()

	before := monitor.Snapshot()
	if before.SyncInProgress {
		t.Fatal("no sync should be in progress initially")
	}
	if !before.LastSync.IsZero() {
		t.Fatal("lastSync should be zero before any drain")
	}

	monitor.setSyncInProgress(true)
	if !monitor.Snapshot().SyncInProgress {
		t.Fatal("snapshot should reflect a running sync")
	}

	monitor.setSyncInProgress(false)
	after := monitor.Snapshot()
	if after.SyncInProgress {
		t.Fatal("snapshot should reflect the finished sync")
	}
	if after.LastSync.IsZero() {
		t.Fatal("lastSync should be stamped when a sync finishes")
	}
}
