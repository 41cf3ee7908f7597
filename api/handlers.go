package api

import (
	"github.com/showcasehub/backend/database"
	"github.com/showcasehub/backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, tokens *services.TokenService, media *services.MediaStore, secureCookies bool) *routeHandlers {
	return &routeHandlers{
		authHandler:       newAuthHandler(db.UserRepo(), tokens, secureCookies),
		userHandler:       newUserHandler(db.UserRepo(), secureCookies),
		projectHandler:    newProjectHandler(db.ProjectRepo(), media),
		ratingHandler:     newRatingHandler(db.RatingRepo(), db.ProjectRepo(), db.UserRepo()),
		technologyHandler: newTechnologyHandler(db.TechnologyRepo()),
		facultyHandler:    newFacultyHandler(db.FacultyRepo()),
	}
}
