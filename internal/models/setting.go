package models

import (
	"time"

	"gorm.io/datatypes"
)

// Well-known settings keys
const (
	SettingStoreInfo = "settings:store"
	SettingHeldSales = "held:sales"
)

// Setting is a simple key-value blob. Store info and the held-sale list live
// here rather than in their own tables; they do not share a transaction
// domain with the indexed collections.
type Setting struct {
	Key       string         `gorm:"primaryKey" json:"key"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null" json:"value"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// TableName specifies the table name
func (Setting) TableName() string {
	return "settings"
}

// StoreSettings is the settings:store blob
type StoreSettings struct {
	StoreName    string  `json:"storeName"`
	StoreAddress string  `json:"storeAddress"`
	StorePhone   string  `json:"storePhone"`
	GSTNumber    string  `json:"gstNumber,omitempty"`
	TaxRate      float64 `json:"taxRate"` // percent, e.g. 17 for 17%
}

// DefaultStoreSettings returns the settings used before the manager saves any
func DefaultStoreSettings() StoreSettings {
	return StoreSettings{
		StoreName: "SmartPOS Store",
		TaxRate:   17,
	}
}

// HeldSale is a parked, not-yet-completed sale. The ID is the hold time in
// unix milliseconds, which gives the list a natural chronological order.
type HeldSale struct {
	ID            string     `json:"id"`
	CreatedAt     time.Time  `json:"createdAt"`
	Items         []CartItem `json:"items"`
	CustomerID    *string    `json:"customerId"`
	PaymentMethod string     `json:"paymentMethod"`
}

// Total sums the line totals without touching product data
func (h HeldSale) Total() float64 {
	var sum float64
	for _, it := range h.Items {
		sum += it.TotalPrice
	}
	return sum
}
