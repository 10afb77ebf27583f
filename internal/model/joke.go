package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Joke represents a single stored joke. The identifier is an opaque
// string assigned by the store at creation.
type Joke struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the record identifier before insertion.
func (j *Joke) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	return nil
}
