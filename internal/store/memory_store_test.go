package store

import (
	"errors"
	"testing"
	"time"

	"github.com/smartpos/smartposgo/internal/models"
	"gorm.io/datatypes"
)

func newMemStore(t *testing.T) *MemoryStore {
	t.Helper()
	st := NewMemoryStore()
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	return st
}

func TestPendingQueueOldestFirst(t *testing.T) {
	st := newMemStore(t)
	base := time.Now().UTC()

	for i, id := range []string{"m-c", "m-a", "m-b"} {
		// Deliberately out of insertion order by timestamp
		offsets := []time.Duration{2 * time.Millisecond, 0, time.Millisecond}
		m := models.PendingMutation{
			ID:         id,
			Kind:       models.MutationProduct,
			Payload:    datatypes.JSON(`{}`),
			EnqueuedAt: base.Add(offsets[i]),
		}
		if err := st.AddPendingMutation(m); err != nil {
			t.Fatalf("enqueue %s: %v", id, err)
		}
	}

	pending, err := st.PendingMutations()
	if err != nil {
		t.Fatalf("read queue: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("expected 3 pending, got %d", len(pending))
	}
	for i, want := range []string{"m-a", "m-b", "m-c"} {
		if pending[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, pending[i].ID)
		}
	}
}

func TestRemovePendingMutationByIdentity(t *testing.T) {
	st := newMemStore(t)
	m := models.PendingMutation{ID: "m-1", Kind: models.MutationProduct, Payload: datatypes.JSON(`{}`), EnqueuedAt: time.Now()}
	if err := st.AddPendingMutation(m); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if err := st.RemovePendingMutation("m-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	count, _ := st.PendingCount()
	if count != 0 {
		t.Errorf("expected empty queue, got %d", count)
	}
}

func TestRecordMutationFailure(t *testing.T) {
	st := newMemStore(t)
	m := models.PendingMutation{ID: "m-1", Kind: models.MutationProduct, Payload: datatypes.JSON(`{}`), EnqueuedAt: time.Now()}
	if err := st.AddPendingMutation(m); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if err := st.RecordMutationFailure("m-1", "HTTP 500"); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if err := st.RecordMutationFailure("m-1", "HTTP 503"); err != nil {
		t.Fatalf("record second failure: %v", err)
	}

	pending, _ := st.PendingMutations()
	if pending[0].RetryCount != 2 {
		t.Errorf("expected retry count 2, got %d", pending[0].RetryCount)
	}
	if pending[0].LastError == nil || *pending[0].LastError != "HTTP 503" {
		t.Errorf("expected last error HTTP 503, got %v", pending[0].LastError)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	st := newMemStore(t)

	var missing models.StoreSettings
	if err := st.GetSetting(models.SettingStoreInfo, &missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unset key, got %v", err)
	}

	in := models.StoreSettings{StoreName: "Corner Shop", TaxRate: 17}
	if err := st.PutSetting(models.SettingStoreInfo, in); err != nil {
		t.Fatalf("put: %v", err)
	}

	var out models.StoreSettings
	if err := st.GetSetting(models.SettingStoreInfo, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.StoreName != "Corner Shop" || out.TaxRate != 17 {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestTransactionsNewestFirst(t *testing.T) {
	st := newMemStore(t)
	base := time.Now().UTC()

	for i, id := range []string{"t-old", "t-new"} {
		txn := models.Transaction{
			ID:                id,
			TransactionNumber: "TXN-" + id,
			CreatedAt:         base.Add(time.Duration(i) * time.Second),
		}
		if err := st.SaveTransaction(txn, nil); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	txns, err := st.GetTransactions()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if txns[0].ID != "t-new" || txns[1].ID != "t-old" {
		t.Errorf("expected newest first, got %s then %s", txns[0].ID, txns[1].ID)
	}
}

func TestMarkTransactionSynced(t *testing.T) {
	st := newMemStore(t)
	txn := models.Transaction{ID: "t-1", TransactionNumber: "TXN-1"}
	items := []models.TransactionItem{{ID: "l-1", TransactionID: "t-1", ProductID: "p-1", Quantity: 1}}
	if err := st.SaveTransaction(txn, items); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := st.MarkTransactionSynced("t-1"); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
	saved, savedItems, err := st.GetTransaction("t-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !saved.Synced {
		t.Error("transaction should be synced")
	}
	if len(savedItems) != 1 {
		t.Errorf("expected 1 line item, got %d", len(savedItems))
	}

	if err := st.MarkTransactionSynced("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown transaction, got %v", err)
	}
}

func TestProductSearch(t *testing.T) {
	st := newMemStore(t)
	if err := st.SaveProducts([]models.Product{
		{ID: "p1", Name: "Basmati Rice", SKU: "GRN-001", Barcode: "111"},
		{ID: "p2", Name: "Cooking Oil", SKU: "GRN-002", Barcode: "222"},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	byName, _ := st.SearchProducts("rice")
	if len(byName) != 1 || byName[0].ID != "p1" {
		t.Errorf("name search failed: %+v", byName)
	}
	bySKU, _ := st.SearchProducts("GRN-002")
	if len(bySKU) != 1 || bySKU[0].ID != "p2" {
		t.Errorf("SKU search failed: %+v", bySKU)
	}
	byBarcode, _ := st.SearchProducts("222")
	if len(byBarcode) != 1 || byBarcode[0].ID != "p2" {
		t.Errorf("barcode search failed: %+v", byBarcode)
	}
}

func TestUserLookupByEmail(t *testing.T) {
	st := newMemStore(t)
	if err := st.PutUser(models.User{ID: "u1", Email: "cashier@example.com", Role: "cashier"}); err != nil {
		t.Fatalf("put user: %v", err)
	}

	u, err := st.GetUserByEmail("cashier@example.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if u.ID != "u1" {
		t.Errorf("wrong user: %+v", u)
	}

	if _, err := st.GetUserByEmail("nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
