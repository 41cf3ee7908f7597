package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/showcasehub/backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Test User",
		Username:     username,
		PasswordHash: "not-a-real-hash",
		Role:         models.RoleStudent,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestTechnology(t *testing.T, db *gorm.DB, name string) *models.Technology {
	t.Helper()

	technology := &models.Technology{Name: name}
	require.NoError(t, db.Create(technology).Error)
	return technology
}

func createTestFaculty(t *testing.T, db *gorm.DB, name string) *models.Faculty {
	t.Helper()

	faculty := &models.Faculty{Name: name}
	require.NoError(t, db.Create(faculty).Error)
	return faculty
}

type testProject struct {
	title     string
	year      int
	track     string
	facultyID *uuid.UUID
	createdAt time.Time
	techIDs   []uuid.UUID
}

func createTestProject(t *testing.T, repo *ProjectRepo, p testProject) *models.Project {
	t.Helper()

	project := &models.Project{
		Title:       p.title,
		Description: "description of " + p.title,
		FacultyID:   p.facultyID,
	}
	if p.year != 0 {
		year := p.year
		project.SubmissionYear = &year
	}
	if p.track != "" {
		track := p.track
		project.StudyTrack = &track
	}
	if !p.createdAt.IsZero() {
		project.CreatedAt = p.createdAt
	}
	require.NoError(t, repo.Add(project, p.techIDs))
	return project
}
