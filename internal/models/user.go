package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleCustomer   Role = "CUSTOMER"
	RoleSalonOwner Role = "SALON_OWNER"
	RoleAdmin      Role = "ADMIN"
)

// Roles is the closed set of account roles.
var Roles = []Role{RoleCustomer, RoleSalonOwner, RoleAdmin}

// Email and phone are unique among active accounts only; deactivated rows
// keep their values.
type User struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Email    string  `gorm:"size:254;not null;index:idx_users_active_email,unique,where:is_active = true" json:"email"`
	Phone    *string `gorm:"size:20;index:idx_users_active_phone,unique,where:is_active = true" json:"phone"`
	Password string  `gorm:"size:255" json:"-"`

	FirstName string `gorm:"size:50;not null" json:"firstName"`
	LastName  string `gorm:"size:50" json:"lastName"`
	Role      Role   `gorm:"size:20;not null;default:'CUSTOMER'" json:"role"`

	EmailVerified bool `gorm:"not null;default:false" json:"emailVerified"`
	PhoneVerified bool `gorm:"not null;default:false" json:"phoneVerified"`
	IsActive      bool `gorm:"not null;default:true;index" json:"isActive"`

	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// HasPassword is false for accounts provisioned without a local password.
func (u *User) HasPassword() bool {
	return u.Password != ""
}
