package model

import (
	"time"
)

type CustomerStatus string

const (
	CustomerStatusLead     CustomerStatus = "lead"
	CustomerStatusProspect CustomerStatus = "prospect"
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusVIP      CustomerStatus = "vip"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Acquisition channel tags accumulated on a customer record.
const (
	SourceWalkIn    = "walk-in"
	SourceTestDrive = "test-drive"
	SourceTradeIn   = "trade-in"
	SourcePurchase  = "purchase"
	SourceFinancing = "financing"
	SourceWebsite   = "website"
)

// ActivityKind selects which linked-record list an activity id is appended to.
type ActivityKind string

const (
	ActivityTestDrive ActivityKind = "test-drive"
	ActivityTradeIn   ActivityKind = "trade-in"
	ActivityFinancing ActivityKind = "financing"
)

// Customer is the deduplicated person record, keyed by email. One customer per
// email; records are created lazily on first interaction and never deleted.
type Customer struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	FirstName string         `gorm:"not null" json:"first_name"`
	LastName  string         `json:"last_name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"` // stored normalized (trimmed, lowercase)
	Phone     string         `json:"phone"`
	Address   string         `json:"address"`
	City      string         `json:"city"`
	State     string         `json:"state"`
	ZipCode   string         `json:"zip_code"`
	Status    CustomerStatus `gorm:"type:varchar(20);default:'lead'" json:"status"`
	Sources   StringArray    `gorm:"type:text" json:"sources"`

	// Aggregates kept in lockstep with the purchase list:
	// TotalPurchases == len(Purchases), TotalSpent == sum(Purchases.SalePrice).
	TotalPurchases int     `gorm:"default:0" json:"total_purchases"`
	TotalSpent     float64 `gorm:"default:0" json:"total_spent"`

	Purchases []Purchase `gorm:"foreignKey:CustomerID" json:"purchases,omitempty"`

	TestDrives            []TestDrive            `gorm:"foreignKey:CustomerID" json:"test_drives,omitempty"`
	TradeIns              []TradeIn              `gorm:"foreignKey:CustomerID" json:"trade_ins,omitempty"`
	FinancingApplications []FinancingApplication `gorm:"foreignKey:CustomerID" json:"financing_applications,omitempty"`

	Tags  StringArray `gorm:"type:text" json:"tags"`
	Notes string      `gorm:"type:text" json:"notes"`

	LastContactDate *time.Time `json:"last_contact_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// FullName joins first and last name for display and denormalized snapshots.
func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Purchase is an append-only entry in a customer's purchase history. It
// denormalizes the vehicle name and VIN at sale time; the row is never
// updated after insertion. Only the owning customer references it.
type Purchase struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	CustomerID  uint   `gorm:"not null;index" json:"customer_id"`
	VehicleID   uint   `gorm:"index" json:"vehicle_id"`
	VehicleName string `gorm:"not null" json:"vehicle_name"`
	VIN         string `gorm:"type:varchar(17)" json:"vin"`

	PurchaseDate   time.Time `gorm:"not null" json:"purchase_date"`
	SalePrice      float64   `gorm:"not null" json:"sale_price"`
	DownPayment    float64   `json:"down_payment"`
	FinancedAmount float64   `json:"financed_amount"`
	TradeInValue   float64   `json:"trade_in_value"`
	Notes          string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}

func (Purchase) TableName() string {
	return "purchases"
}
