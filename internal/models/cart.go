package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// CartItem is one line of the active cart. The product snapshot is embedded
// at add time so a hydration overwrite cannot change a line under the
// cashier's hands; unit price is fixed when the item is added.
type CartItem struct {
	ID         string         `gorm:"primaryKey;type:uuid" json:"id"`
	ProductID  string         `gorm:"type:uuid;index;not null" json:"productId"`
	Product    datatypes.JSON `gorm:"type:jsonb" json:"product"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	UnitPrice  float64        `gorm:"not null" json:"unitPrice"`
	TotalPrice float64        `gorm:"not null" json:"totalPrice"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// SetProduct embeds a product snapshot into the line
func (ci *CartItem) SetProduct(p Product) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	ci.Product = datatypes.JSON(raw)
	return nil
}

// ProductSnapshot decodes the embedded product snapshot
func (ci CartItem) ProductSnapshot() (Product, error) {
	var p Product
	err := json.Unmarshal(ci.Product, &p)
	return p, err
}
