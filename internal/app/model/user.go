package model

import (
	"time"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin" // full access, including destructive operations
	RoleStaff UserRole = "staff" // day-to-day inventory and lead handling
)

// User is a dealership staff account for the admin dashboard. Storefront
// visitors are not users; they become Customer records on first interaction.
type User struct {
	ID           uint     `gorm:"primarykey" json:"id"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Name         string   `gorm:"not null" json:"name"`
	Role         UserRole `gorm:"type:varchar(20);default:'staff'" json:"role"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
