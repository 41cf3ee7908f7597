package models

import "github.com/google/uuid"

// ProjectTechnology is a row in the project/technology many-to-many join
// table. On project update the whole link set for a project is deleted and
// recreated, never diffed.
type ProjectTechnology struct {
	ProjectID    uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;primaryKey;not null"`
	TechnologyID uuid.UUID `json:"technology_id" db:"technology_id" gorm:"type:uuid;primaryKey;not null"`
}

func (ProjectTechnology) TableName() string {
	return "project_technologies"
}
