package model

import (
	"time"
)

type ReconciliationStatus string

const (
	ReconciliationOpen     ReconciliationStatus = "open"
	ReconciliationResolved ReconciliationStatus = "resolved"
)

// ReconciliationTask records a sale whose customer/purchase writes committed
// but whose vehicle sold-flag write failed. The sale completion workflow has
// no cross-entity transaction, so this is the explicit "pending vehicle flip"
// an admin resolves manually.
type ReconciliationTask struct {
	ID         uint `gorm:"primarykey" json:"id"`
	VehicleID  uint `gorm:"not null;index" json:"vehicle_id"`
	CustomerID uint `gorm:"not null;index" json:"customer_id"`
	PurchaseID uint `gorm:"not null" json:"purchase_id"`

	Reason string               `gorm:"type:text" json:"reason"`
	Status ReconciliationStatus `gorm:"type:varchar(20);default:'open'" json:"status"`

	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

func (ReconciliationTask) TableName() string {
	return "reconciliation_tasks"
}
