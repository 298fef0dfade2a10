package models

import (
	"time"

	"gorm.io/datatypes"
)

// MutationKind tags the payload type of a pending mutation
type MutationKind string

const (
	MutationTransaction MutationKind = "transaction"
	MutationProduct     MutationKind = "product"
	MutationCustomer    MutationKind = "customer"
)

// MutationAction is the CRUD verb embedded in product/customer payloads
type MutationAction string

const (
	ActionCreate MutationAction = "create"
	ActionUpdate MutationAction = "update"
	ActionDelete MutationAction = "delete"
)

// PendingMutation is one unit of work owed to the server. The ID doubles as
// the idempotency key sent with every replay attempt, so the server can
// deduplicate a retry whose earlier acknowledgment was lost. Rows are removed
// only on a confirmed 2xx response.
type PendingMutation struct {
	ID         string         `gorm:"primaryKey;type:uuid" json:"id"`
	Kind       MutationKind   `gorm:"type:varchar(20);not null;index" json:"kind"`
	Payload    datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`
	RetryCount int            `gorm:"default:0" json:"retryCount"`
	LastError  *string        `gorm:"type:text" json:"lastError,omitempty"`
	EnqueuedAt time.Time      `gorm:"not null;index" json:"enqueuedAt"`
}

// TableName specifies the table name
func (PendingMutation) TableName() string {
	return "pending_mutations"
}
