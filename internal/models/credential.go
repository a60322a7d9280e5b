package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Credential represents an administrator login.
// Passwords are stored as bcrypt hashes only.
type Credential struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`

	// AdminCode is the out-of-band recovery code used by the
	// forgot-password flow. Distinct from the password.
	AdminCode string `gorm:"uniqueIndex;not null" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Credential model
func (Credential) TableName() string {
	return "credentials"
}

// BeforeCreate assigns a UUID primary key
func (c *Credential) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
