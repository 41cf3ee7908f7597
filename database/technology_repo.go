package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/showcasehub/backend/models"
)

type TechnologyRepo struct {
	db *gorm.DB
}

func NewTechnologyRepo(db *gorm.DB) *TechnologyRepo {
	return &TechnologyRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *TechnologyRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all technologies ordered alphabetically by name.
func (r *TechnologyRepo) FindAll() ([]*models.Technology, error) {
	var technologies []*models.Technology
	err := r.db.Order("name ASC").Find(&technologies).Error
	return technologies, err
}

// FindByID returns a technology by id, or nil when no such row exists.
func (r *TechnologyRepo) FindByID(id uuid.UUID) (*models.Technology, error) {
	var technology models.Technology
	err := r.db.Where("id = ?", id).First(&technology).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &technology, nil
}

// Add inserts a new technology into the database
func (r *TechnologyRepo) Add(technology *models.Technology) error {
	return r.db.Create(technology).Error
}

// Update updates an existing technology in the database
func (r *TechnologyRepo) Update(technology *models.Technology) error {
	return r.db.Save(technology).Error
}

// Delete removes a technology by id. Returns gorm.ErrRecordNotFound when the
// id does not exist.
func (r *TechnologyRepo) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Technology{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
