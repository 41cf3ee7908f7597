package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Technology represents a tool, language or framework tag. Projects reference
// technologies through the project_technologies join table.
type Technology struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null;unique"`
	Description *string   `json:"description" db:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func (t *Technology) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
