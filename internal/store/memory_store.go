package store

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/smartpos/smartposgo/internal/models"
)

// MemoryStore keeps everything in process memory. It is the degraded mode
// used when the local database cannot be opened: the register keeps selling,
// but queue durability is lost for the session.
type MemoryStore struct {
	mu sync.Mutex

	ready        bool
	products     map[string]models.Product
	customers    map[string]models.Customer
	cart         []models.CartItem
	transactions map[string]models.Transaction
	txnItems     map[string][]models.TransactionItem
	pending      map[string]models.PendingMutation
	settings     map[string][]byte
	users        map[string]models.User
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:     make(map[string]models.Product),
		customers:    make(map[string]models.Customer),
		transactions: make(map[string]models.Transaction),
		txnItems:     make(map[string][]models.TransactionItem),
		pending:      make(map[string]models.PendingMutation),
		settings:     make(map[string][]byte),
		users:        make(map[string]models.User),
	}
}

// Init marks the store ready; idempotent
func (s *MemoryStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
	return nil
}

// Ready reports whether Init has been called
func (s *MemoryStore) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// SaveProducts upserts by primary key
func (s *MemoryStore) SaveProducts(products []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		s.products[p.ID] = p
	}
	return nil
}

// GetProducts returns all cached products ordered by name
func (s *MemoryStore) GetProducts() ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetProduct returns one product or ErrNotFound
func (s *MemoryStore) GetProduct(id string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// SearchProducts matches name, SKU, or barcode
func (s *MemoryStore) SearchProducts(query string) ([]models.Product, error) {
	all, _ := s.GetProducts()
	term := strings.ToLower(query)
	out := make([]models.Product, 0)
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.SKU), term) ||
			strings.Contains(strings.ToLower(p.Barcode), term) {
			out = append(out, p)
		}
	}
	return out, nil
}

// PutProduct upserts a single product
func (s *MemoryStore) PutProduct(p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
	return nil
}

// DeleteProduct removes a single product
func (s *MemoryStore) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
	return nil
}

// SaveCustomers upserts by primary key
func (s *MemoryStore) SaveCustomers(customers []models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range customers {
		s.customers[c.ID] = c
	}
	return nil
}

// GetCustomers returns all cached customers ordered by name
func (s *MemoryStore) GetCustomers() ([]models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetCustomer returns one customer or ErrNotFound
func (s *MemoryStore) GetCustomer(id string) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

// PutCustomer upserts a single customer
func (s *MemoryStore) PutCustomer(c models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = c
	return nil
}

// DeleteCustomer removes a single customer
func (s *MemoryStore) DeleteCustomer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.customers, id)
	return nil
}

// SaveCart replaces the active cart
func (s *MemoryStore) SaveCart(items []models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = append([]models.CartItem(nil), items...)
	return nil
}

// GetCart returns the active cart
func (s *MemoryStore) GetCart() ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartItem(nil), s.cart...), nil
}

// ClearCart empties the active cart
func (s *MemoryStore) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	return nil
}

// SaveTransaction stores the transaction and its items together
func (s *MemoryStore) SaveTransaction(txn models.Transaction, items []models.TransactionItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[txn.ID] = txn
	s.txnItems[txn.ID] = append([]models.TransactionItem(nil), items...)
	return nil
}

// GetTransactions returns transactions newest first
func (s *MemoryStore) GetTransactions() ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// GetTransaction returns one transaction with items or ErrNotFound
func (s *MemoryStore) GetTransaction(id string) (*models.Transaction, []models.TransactionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok {
		return nil, nil, ErrNotFound
	}
	return &t, append([]models.TransactionItem(nil), s.txnItems[id]...), nil
}

// MarkTransactionSynced flags a transaction as server-acknowledged
func (s *MemoryStore) MarkTransactionSynced(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok {
		return ErrNotFound
	}
	t.Synced = true
	s.transactions[id] = t
	return nil
}

// AddPendingMutation appends one unit of work to the queue
func (s *MemoryStore) AddPendingMutation(m models.PendingMutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[m.ID] = m
	return nil
}

// PendingMutations returns the queue oldest-first
func (s *MemoryStore) PendingMutations() ([]models.PendingMutation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PendingMutation, 0, len(s.pending))
	for _, m := range s.pending {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EnqueuedAt.Before(out[j].EnqueuedAt) })
	return out, nil
}

// RemovePendingMutation deletes one acknowledged mutation by identity
func (s *MemoryStore) RemovePendingMutation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
	return nil
}

// RecordMutationFailure bumps the retry counter and stores the last error
func (s *MemoryStore) RecordMutationFailure(id string, cause string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.pending[id]
	if !ok {
		return ErrNotFound
	}
	m.RetryCount++
	m.LastError = &cause
	s.pending[id] = m
	return nil
}

// PendingCount returns the number of queued mutations
func (s *MemoryStore) PendingCount() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.pending)), nil
}

// GetSetting decodes a settings blob into out, or returns ErrNotFound
func (s *MemoryStore) GetSetting(key string, out interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.settings[key]
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(raw, out)
}

// PutSetting upserts a settings blob
func (s *MemoryStore) PutSetting(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = raw
	return nil
}

// GetUserByEmail looks up a cashier account for login
func (s *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// PutUser upserts a cashier account
func (s *MemoryStore) PutUser(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}
