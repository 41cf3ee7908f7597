package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/showcasehub/backend/database"
	"github.com/showcasehub/backend/errs"
	"github.com/showcasehub/backend/models"
)

type technologyHandler struct {
	responder      Responder
	logger         zerolog.Logger
	technologyRepo *database.TechnologyRepo
}

func newTechnologyHandler(technologyRepo *database.TechnologyRepo) technologyHandler {
	logger := log.With().Str("handlerName", "technologyHandler").Logger()

	return technologyHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		technologyRepo: technologyRepo,
	}
}

type technologyRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (h technologyHandler) listTechnologies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		technologies, err := h.technologyRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "technologies", err))
			return
		}
		if technologies == nil {
			technologies = []*models.Technology{}
		}
		h.responder.WriteJSON(w, technologies)
	}
}

func (h technologyHandler) getTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		technologyID, err := parseIDParam(r, "technologyID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		technology, err := h.technologyRepo.FindByID(technologyID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "technology", err))
			return
		}
		if technology == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("technology not found"))
			return
		}

		h.responder.WriteJSON(w, technology)
	}
}

func (h technologyHandler) createTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req technologyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("technology payload"))
			return
		}
		if req.Name == "" {
			h.responder.WriteError(w, errs.NewValidationError("name", "name is required"))
			return
		}

		technology := models.Technology{
			Name:        req.Name,
			Description: req.Description,
		}
		if err := h.technologyRepo.Add(&technology); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "technology", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, technology)
	}
}

func (h technologyHandler) updateTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		technologyID, err := parseIDParam(r, "technologyID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		technology, err := h.technologyRepo.FindByID(technologyID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "technology", err))
			return
		}
		if technology == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("technology not found"))
			return
		}

		var req technologyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("technology payload"))
			return
		}
		if req.Name == "" {
			h.responder.WriteError(w, errs.NewValidationError("name", "name is required"))
			return
		}

		technology.Name = req.Name
		technology.Description = req.Description
		if err := h.technologyRepo.Update(technology); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "technology", err))
			return
		}

		h.responder.WriteJSON(w, technology)
	}
}

func (h technologyHandler) deleteTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		technologyID, err := parseIDParam(r, "technologyID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.technologyRepo.Delete(technologyID); err != nil {
			if err == gorm.ErrRecordNotFound {
				h.responder.WriteError(w, errs.NewNotFoundError("technology not found"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("delete", "technology", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "technology deleted successfully",
		})
	}
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	idStr := chi.URLParam(r, name)
	if idStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid " + name)
	}
	return id, nil
}
