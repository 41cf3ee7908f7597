package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Faculty represents an academic department a project may be affiliated with.
type Faculty struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Description *string   `json:"description" db:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func (f *Faculty) BeforeCreate(*gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
