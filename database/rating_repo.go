package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/showcasehub/backend/models"
)

type RatingRepo struct {
	db *gorm.DB
}

func NewRatingRepo(db *gorm.DB) *RatingRepo {
	return &RatingRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *RatingRepo) GetDB() *gorm.DB {
	return r.db
}

// Add attempts to insert the rating guarded by the (project_id, user_id)
// unique index. The insert is a no-op when that pair already has a rating;
// the returned bool reports whether a row was actually written. Under
// concurrent submissions for the same pair the database lets exactly one
// insert through.
func (r *RatingRepo) Add(rating *models.Rating) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(rating)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByProjectAndUser returns the single rating a user gave a project, or
// nil when no rating exists. Absence is not an error.
func (r *RatingRepo) FindByProjectAndUser(projectID, userID uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}
