package sync

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smartpos/smartposgo/internal/models"
	"gorm.io/datatypes"
)

// TransactionPayload is the replay data for a completed sale. It embeds the
// item snapshots rather than referencing cached rows, so a hydration
// overwrite can never corrupt an in-flight mutation.
type TransactionPayload struct {
	Transaction models.Transaction       `json:"transaction"`
	Items       []models.TransactionItem `json:"items"`
}

// ProductPayload is the replay data for a local product edit
type ProductPayload struct {
	Action  models.MutationAction `json:"action"`
	Product models.Product        `json:"product"`
}

// CustomerPayload is the replay data for a local customer edit
type CustomerPayload struct {
	Action   models.MutationAction `json:"action"`
	Customer models.Customer       `json:"customer"`
}

// newMutation wraps a payload into a queue row with a fresh idempotency ID
func newMutation(kind models.MutationKind, payload interface{}) (models.PendingMutation, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return models.PendingMutation{}, fmt.Errorf("sync: encode %s payload: %w", kind, err)
	}
	return models.PendingMutation{
		ID:         uuid.NewString(),
		Kind:       kind,
		Payload:    datatypes.JSON(raw),
		EnqueuedAt: time.Now().UTC(),
	}, nil
}

// NewTransactionMutation queues a completed sale for replay
func NewTransactionMutation(txn models.Transaction, items []models.TransactionItem) (models.PendingMutation, error) {
	return newMutation(models.MutationTransaction, TransactionPayload{Transaction: txn, Items: items})
}

// NewProductMutation queues a product create/update/delete for replay
func NewProductMutation(action models.MutationAction, p models.Product) (models.PendingMutation, error) {
	return newMutation(models.MutationProduct, ProductPayload{Action: action, Product: p})
}

// NewCustomerMutation queues a customer create/update/delete for replay
func NewCustomerMutation(action models.MutationAction, c models.Customer) (models.PendingMutation, error) {
	return newMutation(models.MutationCustomer, CustomerPayload{Action: action, Customer: c})
}

// Snapshot is the pollable connectivity/sync state consumed by the UI
type Snapshot struct {
	IsOnline       bool      `json:"isOnline"`
	SyncInProgress bool      `json:"syncInProgress"`
	LastSync       time.Time `json:"lastSync"`
}

// DrainResult summarizes one pass over the pending queue
type DrainResult struct {
	Attempted int           `json:"attempted"`
	Synced    int           `json:"synced"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"duration"`
}
