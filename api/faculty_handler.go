package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/showcasehub/backend/database"
	"github.com/showcasehub/backend/errs"
	"github.com/showcasehub/backend/models"
)

type facultyHandler struct {
	responder   Responder
	logger      zerolog.Logger
	facultyRepo *database.FacultyRepo
}

func newFacultyHandler(facultyRepo *database.FacultyRepo) facultyHandler {
	logger := log.With().Str("handlerName", "facultyHandler").Logger()

	return facultyHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		facultyRepo: facultyRepo,
	}
}

type facultyRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (h facultyHandler) listFaculties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		faculties, err := h.facultyRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "faculties", err))
			return
		}
		if faculties == nil {
			faculties = []*models.Faculty{}
		}
		h.responder.WriteJSON(w, faculties)
	}
}

func (h facultyHandler) getFaculty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		facultyID, err := parseIDParam(r, "facultyID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		faculty, err := h.facultyRepo.FindByID(facultyID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "faculty", err))
			return
		}
		if faculty == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("faculty not found"))
			return
		}

		h.responder.WriteJSON(w, faculty)
	}
}

func (h facultyHandler) createFaculty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req facultyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("faculty payload"))
			return
		}
		if req.Name == "" {
			h.responder.WriteError(w, errs.NewValidationError("name", "name is required"))
			return
		}

		faculty := models.Faculty{
			Name:        req.Name,
			Description: req.Description,
		}
		if err := h.facultyRepo.Add(&faculty); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "faculty", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, faculty)
	}
}

func (h facultyHandler) updateFaculty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		facultyID, err := parseIDParam(r, "facultyID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		faculty, err := h.facultyRepo.FindByID(facultyID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "faculty", err))
			return
		}
		if faculty == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("faculty not found"))
			return
		}

		var req facultyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("faculty payload"))
			return
		}
		if req.Name == "" {
			h.responder.WriteError(w, errs.NewValidationError("name", "name is required"))
			return
		}

		faculty.Name = req.Name
		faculty.Description = req.Description
		if err := h.facultyRepo.Update(faculty); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "faculty", err))
			return
		}

		h.responder.WriteJSON(w, faculty)
	}
}

func (h facultyHandler) deleteFaculty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		facultyID, err := parseIDParam(r, "facultyID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.facultyRepo.Delete(facultyID); err != nil {
			if err == gorm.ErrRecordNotFound {
				h.responder.WriteError(w, errs.NewNotFoundError("faculty not found"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("delete", "faculty", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "faculty deleted successfully",
		})
	}
}
