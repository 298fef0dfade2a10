package models

import "time"

// Customer mirrors the server-side customer record
type Customer struct {
	ID             string     `gorm:"primaryKey;type:uuid" json:"id"`
	Name           string     `gorm:"index;not null" json:"name"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `gorm:"index" json:"phone,omitempty"`
	Address        string     `gorm:"type:text" json:"address,omitempty"`
	CreditBalance  string     `gorm:"type:decimal(10,2);default:'0'" json:"creditBalance"`
	TotalPurchases string     `gorm:"type:decimal(10,2);default:'0'" json:"totalPurchases"`
	LastVisit      *time.Time `json:"lastVisit,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// TableName specifies the table name
func (Customer) TableName() string {
	return "customers"
}
