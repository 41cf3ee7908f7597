package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/showcasehub/backend/models"
	"github.com/showcasehub/backend/services"
)

// setupRoutes wires the public catalog surface, the auth endpoints and the
// admin-gated write paths.
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware, media *services.MediaStore) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handlers.authHandler.register())
			r.Post("/login", handlers.authHandler.login())
			r.Post("/refresh", handlers.authHandler.refresh())
		})

		r.Route("/users", func(r chi.Router) {
			r.With(auth.authenticate).Get("/personal/me", handlers.userHandler.me())
			r.Get("/logout", handlers.userHandler.logout())
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handlers.projectHandler.listProjects())
			r.Get("/getOne/{projectID}", handlers.projectHandler.getProject())
			r.Post("/ratings", handlers.ratingHandler.submitRating())
			r.Get("/ratings", handlers.ratingHandler.getRating())

			r.Group(func(r chi.Router) {
				r.Use(auth.authenticate)
				r.Use(auth.requireRole(models.RoleAdmin))
				r.Post("/create", handlers.projectHandler.createProject())
				r.Put("/update/{projectID}", handlers.projectHandler.updateProject())
				r.Delete("/delete/{projectID}", handlers.projectHandler.deleteProject())
				r.Post("/import-csv", handlers.projectHandler.importCSV())
			})
		})

		r.Route("/technologies", func(r chi.Router) {
			r.Get("/", handlers.technologyHandler.listTechnologies())
			r.Get("/getOne/{technologyID}", handlers.technologyHandler.getTechnology())

			r.Group(func(r chi.Router) {
				r.Use(auth.authenticate)
				r.Use(auth.requireRole(models.RoleAdmin))
				r.Post("/create", handlers.technologyHandler.createTechnology())
				r.Put("/update/{technologyID}", handlers.technologyHandler.updateTechnology())
				r.Delete("/delete/{technologyID}", handlers.technologyHandler.deleteTechnology())
			})
		})

		r.Route("/faculties", func(r chi.Router) {
			r.Get("/", handlers.facultyHandler.listFaculties())
			r.Get("/getOne/{facultyID}", handlers.facultyHandler.getFaculty())

			r.Group(func(r chi.Router) {
				r.Use(auth.authenticate)
				r.Use(auth.requireRole(models.RoleAdmin))
				r.Post("/create", handlers.facultyHandler.createFaculty())
				r.Put("/update/{facultyID}", handlers.facultyHandler.updateFaculty())
				r.Delete("/delete/{facultyID}", handlers.facultyHandler.deleteFaculty())
			})
		})
	})

	// Media files referenced by stored filename; clients build URLs by
	// prefixing this base path.
	fileServer := http.StripPrefix("/uploads/projects/", http.FileServer(http.Dir(media.Dir())))
	r.Handle("/uploads/projects/*", fileServer)
}
