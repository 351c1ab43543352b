// Package model contain gorm model for recording data to database
package model

import (
	"time"

	"github.com/google/uuid"
)

// Role constants embedded in access tokens and checked by middleware
var (
	// RoleUser is a regular job-seeking account
	RoleUser = "user"
	// RoleAdmin is an administrator account with access to the admin console
	RoleAdmin = "admin"
)

// User is gorm model for an account, both regular users and admins.
// The role field decides which login surface accepts the account.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	Username    string    `gorm:"not null" json:"username"`
	DateOfBirth string    `gorm:"type:text" json:"dob"`
	Role        string    `gorm:"type:text;default:'user'" json:"role"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp" json:"updated_at"`
}

// EditableUserInfo is the part of a user profile that the owner may update
type EditableUserInfo struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	DateOfBirth string `json:"dob"`
}
