package model

import (
	"time"
)

type TradeInStatus string

const (
	TradeInSubmitted  TradeInStatus = "submitted"
	TradeInEvaluating TradeInStatus = "evaluating"
	TradeInInspected  TradeInStatus = "inspected"
	TradeInOfferMade  TradeInStatus = "offer-made"
	TradeInApproved   TradeInStatus = "approved"
	TradeInDeclined   TradeInStatus = "declined"
	TradeInAccepted   TradeInStatus = "accepted"
	TradeInCompleted  TradeInStatus = "completed"
)

// Offers stay valid for 7 days from the moment the offer is made.
const TradeInOfferValidity = 7 * 24 * time.Hour

var tradeInTransitions = map[TradeInStatus][]TradeInStatus{
	TradeInSubmitted:  {TradeInEvaluating, TradeInDeclined},
	TradeInEvaluating: {TradeInInspected, TradeInDeclined},
	TradeInInspected:  {TradeInOfferMade, TradeInDeclined},
	TradeInOfferMade:  {TradeInApproved, TradeInDeclined},
	TradeInApproved:   {TradeInAccepted, TradeInDeclined},
	TradeInAccepted:   {TradeInCompleted},
}

// CanTransition reports whether a trade-in may move from one status to another.
// There is no automatic expiry; every move is admin-selected.
func (s TradeInStatus) CanTransition(to TradeInStatus) bool {
	for _, allowed := range tradeInTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known trade-in status.
func (s TradeInStatus) IsValid() bool {
	switch s {
	case TradeInSubmitted, TradeInEvaluating, TradeInInspected, TradeInOfferMade,
		TradeInApproved, TradeInDeclined, TradeInAccepted, TradeInCompleted:
		return true
	}
	return false
}

// TradeIn is a customer's vehicle trade-in submission and its evaluation
// lifecycle up to an accepted offer.
type TradeIn struct {
	ID         uint `gorm:"primarykey" json:"id"`
	CustomerID uint `gorm:"not null;index" json:"customer_id"`

	CustomerName  string `gorm:"not null" json:"customer_name"`
	CustomerEmail string `gorm:"not null" json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

	// Vehicle being traded in, as described by the customer.
	VehicleYear     int         `json:"vehicle_year"`
	VehicleMake     string      `json:"vehicle_make"`
	VehicleModel    string      `json:"vehicle_model"`
	VehicleVIN      string      `gorm:"type:varchar(17)" json:"vehicle_vin"`
	VehicleMileage  int         `json:"vehicle_mileage"`
	ConditionReport string      `gorm:"type:text" json:"condition_report"`
	PhotoURLs       StringArray `gorm:"type:text" json:"photo_urls"`

	Status          TradeInStatus `gorm:"type:varchar(20);default:'submitted'" json:"status"`
	OfferAmount     *float64      `json:"offer_amount,omitempty"`
	OfferValidUntil *time.Time    `json:"offer_valid_until,omitempty"`
	Notes           string        `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TradeIn) TableName() string {
	return "trade_ins"
}
