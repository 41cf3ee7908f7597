package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/showcasehub/backend/models"
)

type FacultyRepo struct {
	db *gorm.DB
}

func NewFacultyRepo(db *gorm.DB) *FacultyRepo {
	return &FacultyRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *FacultyRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all faculties ordered alphabetically by name.
func (r *FacultyRepo) FindAll() ([]*models.Faculty, error) {
	var faculties []*models.Faculty
	err := r.db.Order("name ASC").Find(&faculties).Error
	return faculties, err
}

// FindByID returns a faculty by id, or nil when no such row exists.
func (r *FacultyRepo) FindByID(id uuid.UUID) (*models.Faculty, error) {
	var faculty models.Faculty
	err := r.db.Where("id = ?", id).First(&faculty).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

// Add inserts a new faculty into the database
func (r *FacultyRepo) Add(faculty *models.Faculty) error {
	return r.db.Create(faculty).Error
}

// Update updates an existing faculty in the database
func (r *FacultyRepo) Update(faculty *models.Faculty) error {
	return r.db.Save(faculty).Error
}

// Delete removes a faculty by id. Returns gorm.ErrRecordNotFound when the id
// does not exist.
func (r *FacultyRepo) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Faculty{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
