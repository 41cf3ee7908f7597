package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is one user's rating of one project. The composite unique index is
// what guarantees a user can rate a given project at most once, even under
// concurrent submissions.
type Rating struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID   uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_rating_project_user"`
	UserID      uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_rating_project_user"`
	Rating      int       `json:"rating" db:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Description *string   `json:"description" db:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	Project *Project `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	User    *User    `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Rating) TableName() string {
	return "project_ratings"
}

func (r *Rating) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
