package model

import (
	"fmt"
	"time"
)

type VehicleCondition string

const (
	ConditionNew       VehicleCondition = "new"
	ConditionUsed      VehicleCondition = "used"
	ConditionCertified VehicleCondition = "certified-pre-owned"
)

type Vehicle struct {
	ID            uint             `gorm:"primarykey" json:"id"`
	VIN           string           `gorm:"type:varchar(17);index" json:"vin"` // optional; validated when present
	Year          int              `gorm:"not null" json:"year"`
	Make          string           `gorm:"not null" json:"make"`
	Model         string           `gorm:"not null" json:"model"`
	Trim          string           `json:"trim"`
	Price         float64          `gorm:"not null" json:"price"`
	Mileage       int              `json:"mileage"`
	MileageUnit   string           `gorm:"type:varchar(10);default:'mi'" json:"mileage_unit"`
	Condition     VehicleCondition `gorm:"type:varchar(30)" json:"condition"`
	BodyType      string           `json:"body_type"`
	Transmission  string           `json:"transmission"`
	Drivetrain    string           `json:"drivetrain"`
	FuelType      string           `json:"fuel_type"`
	ExteriorColor string           `json:"exterior_color"`
	InteriorColor string           `json:"interior_color"`
	Features      StringArray      `gorm:"type:text" json:"features"`
	ImageURLs     StringArray      `gorm:"type:text" json:"image_urls"`
	Description   string           `gorm:"type:text" json:"description"`

	// No default tag: gorm drops zero-value fields that carry one, so a
	// false value would never reach the insert. Create paths set it.
	InStock    bool `json:"in_stock"`
	Sold       bool `gorm:"default:false" json:"sold"`
	IsFeatured bool `gorm:"default:false" json:"is_featured"`

	ServiceRecords  StringArray `gorm:"type:text" json:"service_records"`
	AccidentHistory StringArray `gorm:"type:text" json:"accident_history"`

	DaysOnLot int `gorm:"default:0" json:"days_on_lot"`
	ViewCount int `gorm:"default:0" json:"view_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// DisplayName is the denormalized "2021 Toyota Camry" name stored on purchases.
func (v *Vehicle) DisplayName() string {
	if v.Year > 0 {
		return fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
	}
	return fmt.Sprintf("%s %s", v.Make, v.Model)
}
