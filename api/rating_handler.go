package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/showcasehub/backend/database"
	"github.com/showcasehub/backend/errs"
	"github.com/showcasehub/backend/models"
)

var validate = validator.New()

type ratingHandler struct {
	responder   Responder
	logger      zerolog.Logger
	ratingRepo  *database.RatingRepo
	projectRepo *database.ProjectRepo
	userRepo    *database.UserRepo
}

func newRatingHandler(ratingRepo *database.RatingRepo, projectRepo *database.ProjectRepo, userRepo *database.UserRepo) ratingHandler {
	logger := log.With().Str("handlerName", "ratingHandler").Logger()

	return ratingHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		ratingRepo:  ratingRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

type ratingRequest struct {
	ProjectID   uuid.UUID `json:"projectId" validate:"required"`
	UserID      uuid.UUID `json:"userId" validate:"required"`
	Rating      int       `json:"rating" validate:"required,min=1,max=5"`
	Description string    `json:"description"`
}

// submitRating inserts one user's rating of one project. A second submission
// for the same (project, user) pair is rejected with a conflict and never
// overwrites the stored row.
func (h ratingHandler) submitRating() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ratingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("rating payload"))
			return
		}

		if err := validate.Struct(req); err != nil {
			h.responder.WriteError(w, ratingValidationError(err))
			return
		}

		// Both referenced rows must exist; the endpoint is unauthenticated,
		// so arbitrary ids arrive here.
		project, err := h.projectRepo.FindByID(req.ProjectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}
		user, err := h.userRepo.FindByID(req.UserID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		rating := models.Rating{
			ProjectID: req.ProjectID,
			UserID:    req.UserID,
			Rating:    req.Rating,
		}
		if req.Description != "" {
			rating.Description = &req.Description
		}

		inserted, err := h.ratingRepo.Add(&rating)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "rating", err))
			return
		}
		if !inserted {
			h.responder.WriteError(w, errs.NewConflictError("user has already rated this project"))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Rating saved",
			"rating":  rating,
		})
	}
}

func ratingValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return errs.BadRequest("invalid rating payload")
	}
	for _, fieldErr := range fieldErrors {
		if fieldErr.Field() == "Rating" && (fieldErr.Tag() == "min" || fieldErr.Tag() == "max") {
			return errs.NewValidationError("rating", "rating must be between 1 and 5")
		}
	}
	return errs.BadRequest("projectId, userId and rating are required")
}

// getRating returns the single rating a user gave a project; a missing rating
// is reported as null, not as an error.
func (h ratingHandler) getRating() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectIDStr := r.URL.Query().Get("projectId")
		userIDStr := r.URL.Query().Get("userId")
		if projectIDStr == "" || userIDStr == "" {
			h.responder.WriteError(w, errs.BadRequest("missing projectId or userId"))
			return
		}

		projectID, err := uuid.Parse(projectIDStr)
		if err != nil {
			h.responder.WriteError(w, errs.BadRequest("invalid projectId"))
			return
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			h.responder.WriteError(w, errs.BadRequest("invalid userId"))
			return
		}

		rating, err := h.ratingRepo.FindByProjectAndUser(projectID, userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "rating", err))
			return
		}
		if rating == nil {
			h.responder.WriteJSON(w, map[string]any{"rating": nil})
			return
		}

		h.responder.WriteJSON(w, map[string]any{"rating": rating.Rating})
	}
}
