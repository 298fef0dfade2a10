package pos

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/smartpos/smartposgo/internal/models"
	"github.com/smartpos/smartposgo/internal/store"
)

func newTestCheckout(t *testing.T) (*Checkout, *Cart, *store.MemoryStore) {
	t.Helper()
	cart, st := newTestCart(t)
	return NewCheckout(st, cart), cart, st
}

func TestCheckoutTotalsAndFormatting(t *testing.T) {
	checkout, cart, st := newTestCheckout(t)

	p := testProduct("p1", "Rice", "100")
	if err := st.PutProduct(p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if _, err := cart.Add(p, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	txn, items, err := checkout.Complete("cashier-1", nil, "cash")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	// Default 17% tax on a 200 subtotal
	if txn.Subtotal != "200" {
		t.Errorf("expected subtotal \"200\", got %q", txn.Subtotal)
	}
	if txn.Tax != "34.00" {
		t.Errorf("expected tax \"34.00\", got %q", txn.Tax)
	}
	if txn.Total != "234.00" {
		t.Errorf("expected total \"234.00\", got %q", txn.Total)
	}
	if !strings.HasPrefix(txn.TransactionNumber, "TXN-") {
		t.Errorf("transaction number should carry the TXN- prefix, got %q", txn.TransactionNumber)
	}
	if txn.CustomerID != nil {
		t.Error("walk-in sale should have a nil customer")
	}
	if txn.Synced {
		t.Error("a fresh sale must start unsynced")
	}

	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(items))
	}
	if items[0].ProductName != "Rice" || items[0].ProductSKU != "SKU-p1" {
		t.Errorf("line should denormalize the product snapshot, got %+v", items[0])
	}
	if items[0].UnitPrice != "100.00" || items[0].TotalPrice != "200.00" {
		t.Errorf("line prices should be two-decimal strings, got %+v", items[0])
	}
}

func TestCheckoutEnqueuesExactlyOneMutation(t *testing.T) {
	checkout, cart, st := newTestCheckout(t)

	p := testProduct("p1", "Rice", "100")
	if err := st.PutProduct(p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if _, err := cart.Add(p, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	txn, _, err := checkout.Complete("cashier-1", nil, "cash")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	pending, err := st.PendingMutations()
	if err != nil {
		t.Fatalf("read queue: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected exactly one queued mutation, got %d", len(pending))
	}
	if pending[0].Kind != models.MutationTransaction {
		t.Errorf("expected a transaction mutation, got %s", pending[0].Kind)
	}

	// The payload embeds the full transaction and items
	var payload struct {
		Transaction models.Transaction       `json:"transaction"`
		Items       []models.TransactionItem `json:"items"`
	}
	if err := json.Unmarshal(pending[0].Payload, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Transaction.ID != txn.ID {
		t.Errorf("payload transaction mismatch: %s vs %s", payload.Transaction.ID, txn.ID)
	}
	if len(payload.Items) != 1 {
		t.Errorf("payload should embed the line items, got %d", len(payload.Items))
	}
}

func TestCheckoutClearsCartAndDecrementsStock(t *testing.T) {
	checkout, cart, st := newTestCheckout(t)

	p := testProduct("p1", "Rice", "100")
	p.Stock = 10
	if err := st.PutProduct(p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if _, err := cart.Add(p, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, _, err := checkout.Complete("cashier-1", nil, "cash"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	items, _ := cart.Items()
	if len(items) != 0 {
		t.Fatal("checkout should clear the cart")
	}

	cached, err := st.GetProduct("p1")
	if err != nil {
		t.Fatalf("fetch product: %v", err)
	}
	if cached.Stock != 8 {
		t.Errorf("expected cached stock 8 after selling 2, got %d", cached.Stock)
	}
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	checkout, _, _ := newTestCheckout(t)
	if _, _, err := checkout.Complete("cashier-1", nil, "cash"); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckoutUsesConfiguredTaxRate(t *testing.T) {
	checkout, cart, st := newTestCheckout(t)

	if err := st.PutSetting(models.SettingStoreInfo, models.StoreSettings{StoreName: "Test", TaxRate: 5}); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	p := testProduct("p1", "Rice", "100")
	if _, err := cart.Add(p, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	txn, _, err := checkout.Complete("cashier-1", nil, "card")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if txn.Tax != "10.00" {
		t.Errorf("expected tax \"10.00\" at 5%%, got %q", txn.Tax)
	}
	if txn.Total != "210.00" {
		t.Errorf("expected total \"210.00\", got %q", txn.Total)
	}
}
