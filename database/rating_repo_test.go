package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showcasehub/backend/models"
)

func TestRatingDuplicateIsRejectedNotOverwritten(t *testing.T) {
	db := newTestDB(t)
	projectRepo := NewProjectRepo(db)
	repo := NewRatingRepo(db)

	project := createTestProject(t, projectRepo, testProject{title: "Rated"})
	user := createTestUser(t, db, "rater")

	inserted, err := repo.Add(&models.Rating{ProjectID: project.ID, UserID: user.ID, Rating: 3})
	require.NoError(t, err)
	assert.True(t, inserted)

	// second submission from the same user is a no-op, not an overwrite
	inserted, err = repo.Add(&models.Rating{ProjectID: project.ID, UserID: user.ID, Rating: 5})
	require.NoError(t, err)
	assert.False(t, inserted)

	stored, err := repo.FindByProjectAndUser(project.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 3, stored.Rating)
}

func TestRatingDifferentUsersMayRateSameProject(t *testing.T) {
	db := newTestDB(t)
	projectRepo := NewProjectRepo(db)
	repo := NewRatingRepo(db)

	project := createTestProject(t, projectRepo, testProject{title: "Rated"})
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	for _, user := range []*models.User{alice, bob} {
		inserted, err := repo.Add(&models.Rating{ProjectID: project.ID, UserID: user.ID, Rating: 4})
		require.NoError(t, err)
		assert.True(t, inserted)
	}

	var count int64
	require.NoError(t, db.Model(&models.Rating{}).Where("project_id = ?", project.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestRatingRequiresExistingProjectAndUser(t *testing.T) {
	db := newTestDB(t)
	projectRepo := NewProjectRepo(db)
	repo := NewRatingRepo(db)

	project := createTestProject(t, projectRepo, testProject{title: "Rated"})
	user := createTestUser(t, db, "rater")

	// both ids unknown
	_, err := repo.Add(&models.Rating{ProjectID: uuid.New(), UserID: uuid.New(), Rating: 5})
	require.Error(t, err)

	// known project, unknown user
	_, err = repo.Add(&models.Rating{ProjectID: project.ID, UserID: uuid.New(), Rating: 5})
	require.Error(t, err)

	// unknown project, known user
	_, err = repo.Add(&models.Rating{ProjectID: uuid.New(), UserID: user.ID, Rating: 5})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Rating{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRatingAbsenceIsNotAnError(t *testing.T) {
	db := newTestDB(t)
	projectRepo := NewProjectRepo(db)
	repo := NewRatingRepo(db)

	project := createTestProject(t, projectRepo, testProject{title: "Unrated"})
	user := createTestUser(t, db, "nonrater")

	rating, err := repo.FindByProjectAndUser(project.ID, user.ID)
	require.NoError(t, err)
	assert.Nil(t, rating)
}
