package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/smartpos/smartposgo/internal/database"
	"github.com/smartpos/smartposgo/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DBStore is the durable implementation backed by the register's local
// PostgreSQL database.
type DBStore struct {
	db *database.DB

	mu    sync.Mutex
	ready bool
}

// NewDBStore creates a store over an established database connection
func NewDBStore(db *database.DB) *DBStore {
	return &DBStore{db: db}
}

// Init synchronizes the local schema. Safe to call more than once.
func (s *DBStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	err := s.db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Customer{},
		&models.CartItem{},
		&models.Transaction{},
		&models.TransactionItem{},
		&models.PendingMutation{},
		&models.Setting{},
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.ready = true
	return nil
}

// Ready reports whether the schema has been provisioned
func (s *DBStore) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// SaveProducts bulk-upserts by primary key; the last hydration wins
func (s *DBStore) SaveProducts(products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&products).Error
}

// GetProducts returns all cached products
func (s *DBStore) GetProducts() ([]models.Product, error) {
	var products []models.Product
	err := s.db.Order("name ASC").Find(&products).Error
	return products, err
}

// GetProduct returns one cached product or ErrNotFound
func (s *DBStore) GetProduct(id string) (*models.Product, error) {
	var p models.Product
	err := s.db.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SearchProducts matches name, SKU, or barcode
func (s *DBStore) SearchProducts(query string) ([]models.Product, error) {
	var products []models.Product
	like := "%" + query + "%"
	err := s.db.
		Where("name ILIKE ? OR sku ILIKE ? OR barcode ILIKE ?", like, like, like).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

// PutProduct upserts a single product
func (s *DBStore) PutProduct(p models.Product) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&p).Error
}

// DeleteProduct removes a single cached product
func (s *DBStore) DeleteProduct(id string) error {
	return s.db.Delete(&models.Product{}, "id = ?", id).Error
}

// SaveCustomers bulk-upserts by primary key
func (s *DBStore) SaveCustomers(customers []models.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&customers).Error
}

// GetCustomers returns all cached customers
func (s *DBStore) GetCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.Order("name ASC").Find(&customers).Error
	return customers, err
}

// GetCustomer returns one cached customer or ErrNotFound
func (s *DBStore) GetCustomer(id string) (*models.Customer, error) {
	var c models.Customer
	err := s.db.First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// PutCustomer upserts a single customer
func (s *DBStore) PutCustomer(c models.Customer) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&c).Error
}

// DeleteCustomer removes a single cached customer
func (s *DBStore) DeleteCustomer(id string) error {
	return s.db.Delete(&models.Customer{}, "id = ?", id).Error
}

// SaveCart replaces the active cart in one transaction
func (s *DBStore) SaveCart(items []models.CartItem) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// GetCart returns the active cart in insertion order
func (s *DBStore) GetCart() ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.Order("created_at ASC").Find(&items).Error
	return items, err
}

// ClearCart atomically removes all cart lines
func (s *DBStore) ClearCart() error {
	return s.db.Where("1 = 1").Delete(&models.CartItem{}).Error
}

// SaveTransaction writes the transaction and its line items as one unit
func (s *DBStore) SaveTransaction(txn models.Transaction, items []models.TransactionItem) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// GetTransactions returns local transactions, newest first
func (s *DBStore) GetTransactions() ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.db.Order("created_at DESC").Find(&txns).Error
	return txns, err
}

// GetTransaction returns one transaction with its line items
func (s *DBStore) GetTransaction(id string) (*models.Transaction, []models.TransactionItem, error) {
	var txn models.Transaction
	err := s.db.First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var items []models.TransactionItem
	if err := s.db.Where("transaction_id = ?", id).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, nil, err
	}
	return &txn, items, nil
}

// MarkTransactionSynced flags a transaction as server-acknowledged
func (s *DBStore) MarkTransactionSynced(id string) error {
	return s.db.Model(&models.Transaction{}).Where("id = ?", id).Update("synced", true).Error
}

// AddPendingMutation appends one unit of work to the queue
func (s *DBStore) AddPendingMutation(m models.PendingMutation) error {
	return s.db.Create(&m).Error
}

// PendingMutations returns the queue oldest-first
func (s *DBStore) PendingMutations() ([]models.PendingMutation, error) {
	var pending []models.PendingMutation
	err := s.db.Order("enqueued_at ASC").Find(&pending).Error
	return pending, err
}

// RemovePendingMutation deletes a single acknowledged mutation by identity
func (s *DBStore) RemovePendingMutation(id string) error {
	return s.db.Delete(&models.PendingMutation{}, "id = ?", id).Error
}

// RecordMutationFailure bumps the retry counter and stores the last error
func (s *DBStore) RecordMutationFailure(id string, cause string) error {
	return s.db.Model(&models.PendingMutation{}).Where("id = ?", id).Updates(map[string]interface{}{
		"retry_count": gorm.Expr("retry_count + 1"),
		"last_error":  cause,
	}).Error
}

// PendingCount returns the number of queued mutations
func (s *DBStore) PendingCount() (int64, error) {
	var count int64
	err := s.db.Model(&models.PendingMutation{}).Count(&count).Error
	return count, err
}

// GetSetting decodes a settings blob into out, or returns ErrNotFound
func (s *DBStore) GetSetting(key string, out interface{}) error {
	var setting models.Setting
	err := s.db.First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(setting.Value, out)
}

// PutSetting upserts a settings blob
func (s *DBStore) PutSetting(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	setting := models.Setting{Key: key, Value: datatypes.JSON(raw)}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&setting).Error
}

// GetUserByEmail looks up a cashier account for login
func (s *DBStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// PutUser upserts a cashier account
func (s *DBStore) PutUser(u models.User) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&u).Error
}
