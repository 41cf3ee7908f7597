package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/showcasehub/backend/database"
	"github.com/showcasehub/backend/errs"
	"github.com/showcasehub/backend/models"
	"github.com/showcasehub/backend/services"
)

// maxUploadSize bounds the in-memory portion of multipart parsing; larger
// parts spill to temp files.
const maxUploadSize = 64 << 20

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	media       *services.MediaStore
}

func newProjectHandler(projectRepo *database.ProjectRepo, media *services.MediaStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		media:       media,
	}
}

// ProjectCollection is the listing envelope: the filtered projects plus the
// pre-pagination total and the served page.
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
	Total    int               `json:"total"`
	Page     int               `json:"page,omitempty"`
}

// normalizeProject keeps the JSON contract: technologies is an empty array,
// never null.
func normalizeProject(project *models.Project) *models.Project {
	if project.Technologies == nil {
		project.Technologies = []models.Technology{}
	}
	if project.Media == nil {
		project.Media = datatypes.NewJSONSlice([]string{})
	}
	return project
}

// listProjects retrieves projects matching the optional filters
// @Summary List projects
// @Description Lists projects filtered by faculty, name, year, track, technology and free-text search, with average ratings
// @Tags Projects
// @Produce json
// @Param faculty query string false "Faculty ID" format(uuid)
// @Param name query string false "Title substring"
// @Param year query int false "Submission year"
// @Param track query string false "Study track"
// @Param technology query string false "Technology name substring"
// @Param search query string false "Free-text search over title and description"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} ProjectCollection "Filtered projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /projects [get]
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		var filter database.ProjectFilter
		if facultyStr := query.Get("faculty"); facultyStr != "" {
			facultyID, err := uuid.Parse(facultyStr)
			if err != nil {
				h.responder.WriteError(w, errs.BadRequest("invalid faculty id"))
				return
			}
			filter.FacultyID = &facultyID
		}
		filter.Name = query.Get("name")
		if yearStr := query.Get("year"); yearStr != "" {
			year, err := strconv.Atoi(yearStr)
			if err != nil {
				h.responder.WriteError(w, errs.BadRequest("invalid year"))
				return
			}
			filter.Year = &year
		}
		filter.Track = query.Get("track")
		filter.Technology = query.Get("technology")
		filter.Search = query.Get("search")

		projects, err := h.projectRepo.FindFiltered(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}
		for _, project := range projects {
			normalizeProject(project)
		}

		response := ProjectCollection{Projects: projects, Total: len(projects)}
		if limit, _ := strconv.Atoi(query.Get("limit")); limit > 0 {
			page, _ := strconv.Atoi(query.Get("page"))
			if page < 1 {
				page = 1
			}
			start := (page - 1) * limit
			if start > len(projects) {
				start = len(projects)
			}
			end := start + limit
			if end > len(projects) {
				end = len(projects)
			}
			response.Projects = projects[start:end]
			response.Page = page
		}
		if response.Projects == nil {
			response.Projects = []*models.Project{}
		}

		h.responder.WriteJSON(w, response)
	}
}

// getProject retrieves one project by ID
// @Summary Get project
// @Description Retrieves one project with embedded faculty, technologies and average rating
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Project details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/getOne/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, normalizeProject(project))
	}
}

// createProject creates a project from a multipart form
// @Summary Create project
// @Description Creates a project with media files (field `media`, 1-10 items) and technology links, atomically
// @Tags Projects
// @Accept mpfd
// @Produce json
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - missing/too many/bad-type media or invalid fields"
// @Router /projects/create [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.responder.WriteError(w, errs.Malformed("multipart form"))
			return
		}

		files := r.MultipartForm.File["media"]
		if err := h.media.Validate(files, true); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, techIDs, err := projectFromForm(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// Validation is done; only now do the uploads touch the disk.
		filenames, err := h.media.SaveAll(files)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		project.Media = datatypes.NewJSONSlice(filenames)

		if err := h.projectRepo.Add(project, techIDs); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		created, err := h.projectRepo.FindByID(project.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "project", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, normalizeProject(created))
	}
}

// updateProject updates a project from a multipart form
// @Summary Update project
// @Description Replaces the project's scalar fields; media and technology links are replaced only when supplied
// @Tags Projects
// @Accept mpfd
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Updated project"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/update/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.responder.WriteError(w, errs.Malformed("multipart form"))
			return
		}

		project, techIDs, err := projectFromForm(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		project.ID = projectID
		project.CreatedAt = existing.CreatedAt

		// Zero new files means the stored media list is preserved as-is.
		files := r.MultipartForm.File["media"]
		if len(files) > 0 {
			if err := h.media.Validate(files, false); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			filenames, err := h.media.SaveAll(files)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			project.Media = datatypes.NewJSONSlice(filenames)
		} else {
			project.Media = existing.Media
		}

		// An absent or empty technologies field means "no opinion": the
		// existing link set stays untouched.
		replaceLinks := len(techIDs) > 0

		if err := h.projectRepo.Update(project, techIDs, replaceLinks); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		updated, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "project", err))
			return
		}

		h.responder.WriteJSON(w, normalizeProject(updated))
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Description Deletes a project together with its technology links and ratings
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/delete/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			if err == gorm.ErrRecordNotFound {
				h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// importCSV bulk-creates projects from an uploaded CSV
// @Summary Import projects from CSV
// @Description Inserts one project per CSV row (scalar fields only) in a single transaction; the uploaded file is removed afterwards
// @Tags Projects
// @Accept mpfd
// @Produce json
// @Success 201 {object} map[string]string "Import result"
// @Failure 400 {object} ErrorResponse "Bad Request - missing or malformed CSV"
// @Router /projects/import-csv [post]
func (h projectHandler) importCSV() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.BadRequest("CSV file is required"))
			return
		}
		defer file.Close()

		// Buffer the upload to disk and remove it on every path: success,
		// import failure and parse error alike.
		tmp, err := os.CreateTemp("", "project-import-*.csv")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		tmpPath := tmp.Name()
		defer os.Remove(tmpPath)

		if _, err := io.Copy(tmp, file); err != nil {
			tmp.Close()
			h.responder.WriteError(w, err)
			return
		}
		if err := tmp.Close(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		csvFile, err := os.Open(tmpPath)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		projects, parseErr := services.ParseProjectsCSV(csvFile)
		csvFile.Close()
		if parseErr != nil {
			h.responder.WriteError(w, parseErr)
			return
		}

		if err := h.projectRepo.BulkAdd(projects); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("import", "projects", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]string{
			"message": "CSV imported successfully",
			"count":   strconv.Itoa(len(projects)),
		})
	}
}

func parseProjectID(r *http.Request) (uuid.UUID, error) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing projectID")
	}
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid projectID")
	}
	return projectID, nil
}

// projectFromForm builds a project's scalar fields from the multipart form.
// Optional fields left blank become NULL, never empty strings.
func projectFromForm(r *http.Request) (*models.Project, []uuid.UUID, error) {
	optional := func(name string) *string {
		if v := strings.TrimSpace(r.FormValue(name)); v != "" {
			return &v
		}
		return nil
	}

	project := &models.Project{
		Title:        strings.TrimSpace(r.FormValue("title")),
		MainTopic:    optional("main_topic"),
		Description:  strings.TrimSpace(r.FormValue("description")),
		StudyTrack:   optional("study_track"),
		GithubLink:   optional("github_link"),
		LiveLink:     optional("live_link"),
		YoutubeLink:  optional("youtube_link"),
		DocumentLink: optional("document_link"),
	}

	if project.Title == "" {
		return nil, nil, errs.NewValidationError("title", "title is required")
	}
	if project.Description == "" {
		return nil, nil, errs.NewValidationError("description", "description is required")
	}

	if yearStr := r.FormValue("submission_year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, nil, errs.NewValidationError("submission_year", "submission_year must be an integer")
		}
		project.SubmissionYear = &year
	}

	if facultyStr := r.FormValue("faculty_id"); facultyStr != "" {
		facultyID, err := uuid.Parse(facultyStr)
		if err != nil {
			return nil, nil, errs.NewValidationError("faculty_id", "invalid faculty_id")
		}
		project.FacultyID = &facultyID
	}

	techIDs, err := technologyIDsFromForm(r)
	if err != nil {
		return nil, nil, err
	}

	return project, techIDs, nil
}

// technologyIDsFromForm accepts the technologies field either repeated or as
// a single comma-separated value.
func technologyIDsFromForm(r *http.Request) ([]uuid.UUID, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var techIDs []uuid.UUID
	for _, value := range r.MultipartForm.Value["technologies"] {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			techID, err := uuid.Parse(part)
			if err != nil {
				return nil, errs.NewValidationError("technologies", fmt.Sprintf("invalid technology id: %s", part))
			}
			techIDs = append(techIDs, techID)
		}
	}
	return techIDs, nil
}
