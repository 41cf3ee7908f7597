package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/showcasehub/backend/models"
)

// avgRatingJoin folds the arithmetic mean of all ratings into each project
// row. COALESCE keeps unrated projects at 0 instead of NULL.
const avgRatingJoin = "LEFT JOIN (SELECT project_id, AVG(rating) AS avg_rating " +
	"FROM project_ratings GROUP BY project_id) ratings ON ratings.project_id = projects.id"

// ProjectFilter holds the optional listing filters. Zero-valued fields impose
// no constraint; supplied fields are combined conjunctively.
type ProjectFilter struct {
	FacultyID  *uuid.UUID
	Name       string // title substring, case-insensitive
	Year       *int   // submission year, exact
	Track      string // study track, exact
	Technology string // technology name substring, case-insensitive
	Search     string // title OR description substring, case-insensitive
}

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

func (r *ProjectRepo) withRating() *gorm.DB {
	return r.db.Model(&models.Project{}).
		Select("projects.*, COALESCE(ratings.avg_rating, 0) AS average_rating").
		Joins(avgRatingJoin).
		Preload("Technologies").
		Preload("Faculty")
}

func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

// FindFiltered returns every project satisfying the conjunction of the
// supplied filters, newest-created first with id as tiebreak. Each row
// carries its technologies, faculty and average rating.
func (r *ProjectRepo) FindFiltered(filter ProjectFilter) ([]*models.Project, error) {
	query := r.withRating()

	if filter.FacultyID != nil {
		query = query.Where("projects.faculty_id = ?", *filter.FacultyID)
	}
	if filter.Name != "" {
		query = query.Where("LOWER(projects.title) LIKE ?", containsPattern(filter.Name))
	}
	if filter.Year != nil {
		query = query.Where("projects.submission_year = ?", *filter.Year)
	}
	if filter.Track != "" {
		query = query.Where("projects.study_track = ?", filter.Track)
	}
	if filter.Technology != "" {
		// Matches projects having at least one linked technology whose name
		// contains the substring; projects without links never match.
		query = query.Where(
			"EXISTS (SELECT 1 FROM project_technologies pt "+
				"JOIN technologies t ON t.id = pt.technology_id "+
				"WHERE pt.project_id = projects.id AND LOWER(t.name) LIKE ?)",
			containsPattern(filter.Technology),
		)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where(
			"LOWER(projects.title) LIKE ? OR LOWER(projects.description) LIKE ?",
			pattern, pattern,
		)
	}

	var projects []*models.Project
	err := query.Order("projects.created_at DESC, projects.id DESC").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID with technologies, faculty and average
// rating, or nil when no such project exists.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.withRating().Where("projects.id = ?", id).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a project row and one link row per technology id as a single
// transaction; any failure rolls the whole insert back.
func (r *ProjectRepo) Add(project *models.Project, technologyIDs []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Technologies", "Faculty").Create(project).Error; err != nil {
			return err
		}
		for _, techID := range technologyIDs {
			link := models.ProjectTechnology{ProjectID: project.ID, TechnologyID: techID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update persists the project's scalar fields and, when replaceLinks is set,
// deletes the existing link set in full and recreates it from technologyIDs.
// Both happen in one transaction. With replaceLinks unset the links are left
// untouched.
func (r *ProjectRepo) Update(project *models.Project, technologyIDs []uuid.UUID, replaceLinks bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Technologies", "Faculty").Save(project).Error; err != nil {
			return err
		}
		if !replaceLinks {
			return nil
		}
		if err := tx.Where("project_id = ?", project.ID).
			Delete(&models.ProjectTechnology{}).Error; err != nil {
			return err
		}
		for _, techID := range technologyIDs {
			link := models.ProjectTechnology{ProjectID: project.ID, TechnologyID: techID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a project together with its links and ratings. Returns
// gorm.ErrRecordNotFound when the id does not exist.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).
			Delete(&models.ProjectTechnology{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).
			Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// BulkAdd inserts every project in one transaction; a failure on any row
// aborts the whole import.
func (r *ProjectRepo) BulkAdd(projects []*models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, project := range projects {
			if err := tx.Omit("Technologies", "Faculty").Create(project).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
