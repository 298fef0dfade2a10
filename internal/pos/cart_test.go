package pos

import (
	"errors"
	"testing"

	"github.com/smartpos/smartposgo/internal/models"
	"github.com/smartpos/smartposgo/internal/store"
)

func newTestCart(t *testing.T) (*Cart, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	if err := st.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}
	return NewCart(st), st
}

func testProduct(id, name, price string) models.Product {
	return models.Product{ID: id, Name: name, SKU: "SKU-" + id, Price: price, Stock: 10, IsActive: true}
}

func TestCartAddBumpsExistingLine(t *testing.T) {
	cart, _ := newTestCart(t)
	p := testProduct("p1", "Rice", "100")

	if _, err := cart.Add(p, 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	line, err := cart.Add(p, 1)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if line.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", line.Quantity)
	}
	if line.TotalPrice != 200 {
		t.Errorf("expected line total 200, got %v", line.TotalPrice)
	}

	items, _ := cart.Items()
	if len(items) != 1 {
		t.Fatalf("same product should stay on one line, got %d lines", len(items))
	}
}

func TestCartAddRejectsNonPositiveQuantity(t *testing.T) {
	cart, _ := newTestCart(t)
	if _, err := cart.Add(testProduct("p1", "Rice", "100"), 0); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("expected ErrQuantityInvalid, got %v", err)
	}
	if _, err := cart.Add(testProduct("p1", "Rice", "100"), -3); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("expected ErrQuantityInvalid, got %v", err)
	}
}

func TestCartUnitPriceFixedAtAddTime(t *testing.T) {
	cart, st := newTestCart(t)
	p := testProduct("p1", "Rice", "100")
	if err := st.PutProduct(p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if _, err := cart.Add(p, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Catalog price changes after the line is created
	p.Price = "150"
	if err := st.PutProduct(p); err != nil {
		t.Fatalf("update product: %v", err)
	}

	items, _ := cart.Items()
	if items[0].UnitPrice != 100 {
		t.Errorf("line price should stay at 100, got %v", items[0].UnitPrice)
	}
}

func TestCartSummary(t *testing.T) {
	cart, _ := newTestCart(t)
	if _, err := cart.Add(testProduct("p1", "Rice", "100"), 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	s, err := cart.Summary(17)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.Subtotal != 200 {
		t.Errorf("expected subtotal 200, got %v", s.Subtotal)
	}
	if s.Tax != 34 {
		t.Errorf("expected tax 34, got %v", s.Tax)
	}
	if s.Total != 234 {
		t.Errorf("expected total 234, got %v", s.Total)
	}
	if s.ItemCount != 2 {
		t.Errorf("expected item count 2, got %d", s.ItemCount)
	}
}

func TestCartUpdateQuantityZeroRemovesLine(t *testing.T) {
	cart, _ := newTestCart(t)
	line, err := cart.Add(testProduct("p1", "Rice", "100"), 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := cart.UpdateQuantity(line.ID, 0); err != nil {
		t.Fatalf("update to zero: %v", err)
	}
	items, _ := cart.Items()
	if len(items) != 0 {
		t.Fatalf("zero quantity should remove the line, got %d lines", len(items))
	}
}

func TestCartRemoveUnknownLine(t *testing.T) {
	cart, _ := newTestCart(t)
	if err := cart.Remove("nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := cart.UpdateQuantity("nope", 3); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCartSurvivesReconstruction(t *testing.T) {
	cart, st := newTestCart(t)
	if _, err := cart.Add(testProduct("p1", "Rice", "100"), 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	// A fresh cart over the same store sees the same lines
	reopened := NewCart(st)
	items, err := reopened.Items()
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("cart should persist across service restarts, got %+v", items)
	}
}
