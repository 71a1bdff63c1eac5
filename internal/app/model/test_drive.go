package model

import (
	"time"
)

type TestDriveStatus string

const (
	TestDrivePending   TestDriveStatus = "pending"
	TestDriveScheduled TestDriveStatus = "scheduled"
	TestDriveCompleted TestDriveStatus = "completed"
	TestDriveCancelled TestDriveStatus = "cancelled"
	TestDriveNoShow    TestDriveStatus = "no-show"
)

// testDriveTransitions is the allowed[from] = {to...} table consulted before
// any status write. Completed, cancelled and no-show are terminal.
var testDriveTransitions = map[TestDriveStatus][]TestDriveStatus{
	TestDrivePending:   {TestDriveScheduled, TestDriveCancelled, TestDriveNoShow},
	TestDriveScheduled: {TestDriveCompleted, TestDriveCancelled, TestDriveNoShow},
}

// CanTransition reports whether a test drive may move from one status to another.
func (s TestDriveStatus) CanTransition(to TestDriveStatus) bool {
	for _, allowed := range testDriveTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known test-drive status.
func (s TestDriveStatus) IsValid() bool {
	switch s {
	case TestDrivePending, TestDriveScheduled, TestDriveCompleted, TestDriveCancelled, TestDriveNoShow:
		return true
	}
	return false
}

// TestDrive is a scheduled drive request tied to a customer and, optionally,
// a specific vehicle. Contact info is denormalized from the submission so the
// record stays readable even if the customer record changes later.
type TestDrive struct {
	ID         uint  `gorm:"primarykey" json:"id"`
	CustomerID uint  `gorm:"not null;index" json:"customer_id"`
	VehicleID  *uint `gorm:"index" json:"vehicle_id,omitempty"`

	CustomerName  string `gorm:"not null" json:"customer_name"`
	CustomerEmail string `gorm:"not null" json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

	VehicleName   string          `json:"vehicle_name"`
	PreferredDate string          `json:"preferred_date"` // as submitted, e.g. "2026-09-02"
	PreferredTime string          `json:"preferred_time"`
	Status        TestDriveStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TestDrive) TableName() string {
	return "test_drives"
}
