package model

import (
	"time"
)

type FinancingStatus string

const (
	FinancingSubmitted          FinancingStatus = "submitted"
	FinancingReviewing          FinancingStatus = "reviewing"
	FinancingDocumentsRequested FinancingStatus = "documents-requested"
	FinancingPreApproved        FinancingStatus = "pre-approved"
	FinancingApproved           FinancingStatus = "approved"
	FinancingDeclined           FinancingStatus = "declined"
	FinancingCancelled          FinancingStatus = "cancelled"
)

var financingTransitions = map[FinancingStatus][]FinancingStatus{
	FinancingSubmitted:          {FinancingReviewing, FinancingCancelled},
	FinancingReviewing:          {FinancingDocumentsRequested, FinancingPreApproved, FinancingApproved, FinancingDeclined, FinancingCancelled},
	FinancingDocumentsRequested: {FinancingReviewing, FinancingPreApproved, FinancingApproved, FinancingDeclined, FinancingCancelled},
	FinancingPreApproved:        {FinancingApproved, FinancingDeclined, FinancingCancelled},
}

// CanTransition reports whether an application may move from one status to another.
func (s FinancingStatus) CanTransition(to FinancingStatus) bool {
	for _, allowed := range financingTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known financing status.
func (s FinancingStatus) IsValid() bool {
	switch s {
	case FinancingSubmitted, FinancingReviewing, FinancingDocumentsRequested,
		FinancingPreApproved, FinancingApproved, FinancingDeclined, FinancingCancelled:
		return true
	}
	return false
}

// FinancingApplication is a loan application tied to a customer and,
// optionally, the vehicle being financed.
type FinancingApplication struct {
	ID         uint  `gorm:"primarykey" json:"id"`
	CustomerID uint  `gorm:"not null;index" json:"customer_id"`
	VehicleID  *uint `gorm:"index" json:"vehicle_id,omitempty"`

	CustomerName  string `gorm:"not null" json:"customer_name"`
	CustomerEmail string `gorm:"not null" json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

	EmploymentStatus string  `json:"employment_status"`
	EmployerName     string  `json:"employer_name"`
	AnnualIncome     float64 `json:"annual_income"`
	CreditScoreRange string  `gorm:"type:varchar(20)" json:"credit_score_range"` // e.g. "650-699"

	LoanAmount  float64 `json:"loan_amount"`
	DownPayment float64 `json:"down_payment"`
	TermMonths  int     `json:"term_months"`

	Status FinancingStatus `gorm:"type:varchar(30);default:'submitted'" json:"status"`
	Notes  string          `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (FinancingApplication) TableName() string {
	return "financing_applications"
}
