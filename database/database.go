package database

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/showcasehub/backend/models"
)

type Database struct {
	userRepo       *UserRepo
	projectRepo    *ProjectRepo
	technologyRepo *TechnologyRepo
	facultyRepo    *FacultyRepo
	ratingRepo     *RatingRepo
}

// New initializes a new Database struct with each repository using a shared
// GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:       NewUserRepo(db),
		projectRepo:    NewProjectRepo(db),
		technologyRepo: NewTechnologyRepo(db),
		facultyRepo:    NewFacultyRepo(db),
		ratingRepo:     NewRatingRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TechnologyRepo() *TechnologyRepo {
	return d.technologyRepo
}

func (d Database) FacultyRepo() *FacultyRepo {
	return d.facultyRepo
}

func (d Database) RatingRepo() *RatingRepo {
	return d.ratingRepo
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Faculty{},
		&models.Technology{},
		&models.Project{},
		&models.ProjectTechnology{},
		&models.Rating{},
	)
}

type seedUser struct {
	name     string
	username string
	password string
	role     string
}

// SeedUsers inserts a default set of accounts when the users table is empty.
// Existing installations are left untouched.
func SeedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Msg("Users already exist, skipping seeding")
		return nil
	}

	seeds := []seedUser{
		{"Alice Johnson", "alice_admin", "password123", models.RoleAdmin},
		{"Michael Smith", "michael_admin", "securepass", models.RoleAdmin},
		{"John Doe", "john_doe", "student123", models.RoleStudent},
		{"Emily Davis", "emily_davis", "student123", models.RoleStudent},
	}

	for _, seed := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			Name:         seed.name,
			Username:     seed.username,
			PasswordHash: string(hash),
			Role:         seed.role,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		log.Info().Str("username", seed.username).Str("role", seed.role).Msg("Seeded user")
	}

	return nil
}
