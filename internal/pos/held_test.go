package pos

import (
	"errors"
	"testing"
	"time"

	"github.com/smartpos/smartposgo/internal/store"
)

func newTestHeld(t *testing.T) (*HeldSales, *Cart) {
	t.Helper()
	cart, st := newTestCart(t)
	return NewHeldSales(st, cart), cart
}

func TestHoldClearsActiveCart(t *testing.T) {
	held, cart := newTestHeld(t)
	if _, err := cart.Add(testProduct("p1", "Rice", "100"), 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	sale, err := held.Hold(nil, "cash")
	if err != nil {
		t.Fatalf("hold: %v", err)
	}
	if len(sale.Items) != 1 {
		t.Fatalf("held sale should carry the cart lines, got %d", len(sale.Items))
	}
	if sale.Total() != 200 {
		t.Errorf("expected held total 200, got %v", sale.Total())
	}

	items, _ := cart.Items()
	if len(items) != 0 {
		t.Fatal("holding must clear the active cart")
	}
}

func TestHoldRejectsEmptyCart(t *testing.T) {
	held, _ := newTestHeld(t)
	if _, err := held.Hold(nil, "cash"); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestRestoreIsAtMostOnce(t *testing.T) {
	held, cart := newTestHeld(t)
	if _, err := cart.Add(testProduct("p1", "Rice", "100"), 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	sale, err := held.Hold(nil, "cash")
	if err != nil {
		t.Fatalf("hold: %v", err)
	}

	restored, err := held.Restore(sale.ID)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.ID != sale.ID {
		t.Errorf("restored wrong sale: %s", restored.ID)
	}

	items, _ := cart.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("cart should contain the restored lines, got %+v", items)
	}

	// The sale left the held list on the first restore
	if _, err := held.Restore(sale.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second restore should fail with ErrNotFound, got %v", err)
	}
}

func TestHeldListNewestFirst(t *testing.T) {
	held, cart := newTestHeld(t)

	if _, err := cart.Add(testProduct("p1", "Rice", "100"), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	first, err := held.Hold(nil, "cash")
	if err != nil {
		t.Fatalf("hold first: %v", err)
	}

	// Hold IDs are millisecond timestamps; keep the two holds apart
	time.Sleep(2 * time.Millisecond)

	if _, err := cart.Add(testProduct("p2", "Oil", "50"), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := held.Hold(nil, "card")
	if err != nil {
		t.Fatalf("hold second: %v", err)
	}

	sales, err := held.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sales) != 2 {
		t.Fatalf("expected 2 held sales, got %d", len(sales))
	}
	if sales[0].ID < sales[1].ID {
		t.Errorf("list should be newest first: %s before %s", sales[0].ID, sales[1].ID)
	}
	_ = first
	_ = second
}

func TestDiscardRemovesSale(t *testing.T) {
	held, cart := newTestHeld(t)
	if _, err := cart.Add(testProduct("p1", "Rice", "100"), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	sale, err := held.Hold(nil, "cash")
	if err != nil {
		t.Fatalf("hold: %v", err)
	}

	if err := held.Discard(sale.ID); err != nil {
		t.Fatalf("discard: %v", err)
	}
	sales, _ := held.List()
	if len(sales) != 0 {
		t.Fatalf("discarded sale should be gone, got %d", len(sales))
	}
	if err := held.Discard(sale.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("double discard should fail with ErrNotFound, got %v", err)
	}
}
