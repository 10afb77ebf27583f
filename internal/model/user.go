package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jokebox/internal/errors"
)

// Role is the access level assigned to a user account.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleUser   Role = "USER"
	RoleEditor Role = "EDITOR"
)

// ParseRole normalizes a role string to uppercase and validates it
// against the known role set.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(s)); r {
	case RoleAdmin, RoleUser, RoleEditor:
		return r, nil
	default:
		return "", errors.ErrInvalidRole
	}
}

// User represents a registered account in the system.
type User struct {
	ID                string    `json:"id" gorm:"type:char(36);primaryKey"`
	Email             string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash      string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role              Role      `json:"role" gorm:"type:varchar(20);not null;default:'USER'"`
	Name              string    `json:"name,omitempty" gorm:"size:255"`
	ProfilePictureURL string    `json:"profilePictureUrl,omitempty" gorm:"size:512"`
	Bio               string    `json:"bio,omitempty" gorm:"type:text"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the record identifier before insertion.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
