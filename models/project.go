package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project represents a showcased student project with its media, links and
// affiliations. Optional scalar fields are pointers so they persist as NULL
// rather than empty strings.
type Project struct {
	ID             uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title          string                      `json:"title" db:"title" gorm:"type:text;not null"`
	MainTopic      *string                     `json:"main_topic" db:"main_topic" gorm:"type:text"`
	Description    string                      `json:"description" db:"description" gorm:"type:text;not null"`
	SubmissionYear *int                        `json:"submission_year" db:"submission_year"`
	StudyTrack     *string                     `json:"study_track" db:"study_track" gorm:"type:text"`
	FacultyID      *uuid.UUID                  `json:"faculty_id" db:"faculty_id" gorm:"type:uuid"`
	GithubLink     *string                     `json:"github_link" db:"github_link" gorm:"type:text"`
	LiveLink       *string                     `json:"live_link" db:"live_link" gorm:"type:text"`
	YoutubeLink    *string                     `json:"youtube_link" db:"youtube_link" gorm:"type:text"`
	DocumentLink   *string                     `json:"document_link" db:"document_link" gorm:"type:text"`
	Media          datatypes.JSONSlice[string] `json:"media" db:"media"`
	CreatedAt      time.Time                   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at" db:"updated_at"`

	Faculty      *Faculty     `json:"faculty" gorm:"foreignKey:FacultyID;references:ID;constraint:OnDelete:SET NULL"`
	Technologies []Technology `json:"technologies" gorm:"many2many:project_technologies"`

	// AverageRating is derived at query time from project_ratings; it is
	// never written.
	AverageRating float64 `json:"average_rating" gorm:"->;-:migration"`
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
