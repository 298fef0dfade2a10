// Package store is the register's durable local store: cached reference
// data, the active cart, completed transactions, the pending-mutation queue,
// and the key-value settings blobs. Everything the POS needs to sell while
// the network is down lives behind this interface.
package store

import (
	"errors"

	"github.com/smartpos/smartposgo/internal/models"
)

// ErrNotFound is returned for a missing key; callers never see a panic for
// an absent record.
var ErrNotFound = errors.New("store: record not found")

// ErrStorageUnavailable signals the durable backend cannot be opened or used.
// Callers degrade to memory-only operation and surface a warning; the sale
// flow itself is never blocked by it while online.
var ErrStorageUnavailable = errors.New("store: storage unavailable")

// Store is the durable local store consumed by the cart, held-sale manager,
// sync engine, and hydrator. Implemented by DBStore (durable) and
// MemoryStore (session-only fallback).
type Store interface {
	// Init provisions the schema on first call; idempotent.
	Init() error
	// Ready reports whether Init has succeeded. The sync engine no-ops
	// while the store is not ready.
	Ready() bool

	// Cached reference data (hydration overwrites, UI reads)
	SaveProducts(products []models.Product) error
	GetProducts() ([]models.Product, error)
	GetProduct(id string) (*models.Product, error)
	SearchProducts(query string) ([]models.Product, error)
	PutProduct(p models.Product) error
	DeleteProduct(id string) error

	SaveCustomers(customers []models.Customer) error
	GetCustomers() ([]models.Customer, error)
	GetCustomer(id string) (*models.Customer, error)
	PutCustomer(c models.Customer) error
	DeleteCustomer(id string) error

	// Active cart (atomic clear+replace on save)
	SaveCart(items []models.CartItem) error
	GetCart() ([]models.CartItem, error)
	ClearCart() error

	// Completed sales; transaction plus line items is one atomic write
	SaveTransaction(txn models.Transaction, items []models.TransactionItem) error
	GetTransactions() ([]models.Transaction, error)
	GetTransaction(id string) (*models.Transaction, []models.TransactionItem, error)
	MarkTransactionSynced(id string) error

	// Pending-mutation queue; enqueue and dequeue touch single rows so the
	// UI and the sync engine never race on a read-modify-write of the list
	AddPendingMutation(m models.PendingMutation) error
	PendingMutations() ([]models.PendingMutation, error)
	RemovePendingMutation(id string) error
	RecordMutationFailure(id string, cause string) error
	PendingCount() (int64, error)

	// Key-value settings blobs (settings:store, held:sales)
	GetSetting(key string, out interface{}) error
	PutSetting(key string, value interface{}) error

	// Cashier accounts for local login
	GetUserByEmail(email string) (*models.User, error)
	PutUser(u models.User) error
}
