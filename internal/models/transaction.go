package models

import "time"

// Payment status values
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
)

// Transaction is a completed sale recorded locally. Synced reflects whether
// the server has acknowledged the matching pending mutation.
type Transaction struct {
	ID                string    `gorm:"primaryKey;type:uuid" json:"id"`
	TransactionNumber string    `gorm:"uniqueIndex;not null" json:"transactionNumber"`
	CustomerID        *string   `gorm:"type:uuid;index" json:"customerId"`
	UserID            string    `gorm:"not null" json:"userId"`
	Subtotal          string    `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax               string    `gorm:"type:decimal(10,2);not null" json:"tax"`
	Total             string    `gorm:"type:decimal(10,2);not null" json:"total"`
	PaymentMethod     string    `gorm:"not null" json:"paymentMethod"` // cash, card, jazzcash, easypaisa
	PaymentStatus     string    `gorm:"default:'completed'" json:"paymentStatus"`
	Synced            bool      `gorm:"default:false" json:"synced"`
	CreatedAt         time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionItem is one sold line. Product name and SKU are denormalized at
// checkout so receipts render offline even after a hydration overwrite.
type TransactionItem struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	TransactionID string    `gorm:"type:uuid;index;not null" json:"transactionId"`
	ProductID     string    `gorm:"type:uuid;index;not null" json:"productId"`
	ProductName   string    `json:"productName"`
	ProductSKU    string    `gorm:"column:product_sku" json:"productSku"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	UnitPrice     string    `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	TotalPrice    string    `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TableName specifies the table name
func (TransactionItem) TableName() string {
	return "transaction_items"
}
