package models

import (
	"strconv"
	"time"
)

// Product is a cached copy of a server-side product. The server assigns the
// ID; hydration overwrites the whole row (last pull wins, no merge).
// Standardized: Go (PascalCase) -> DB (snake_case) -> JSON (camelCase)
type Product struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	SKU         string    `gorm:"column:sku;uniqueIndex;not null" json:"sku"`
	Barcode     string    `gorm:"index" json:"barcode,omitempty"`
	Category    string    `gorm:"index;not null" json:"category"`
	Price       string    `gorm:"type:decimal(10,2);not null" json:"price"`
	Cost        string    `gorm:"type:decimal(10,2)" json:"cost,omitempty"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	MinStock    int       `gorm:"default:5" json:"minStock"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// PriceValue parses the decimal price string. Unparseable prices read as 0.
func (p Product) PriceValue() float64 {
	v, err := strconv.ParseFloat(p.Price, 64)
	if err != nil {
		return 0
	}
	return v
}
