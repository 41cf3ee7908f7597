package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showcasehub/backend/models"
)

func (e *testEnv) createTechnology(t *testing.T, name string) *models.Technology {
	t.Helper()

	tech := &models.Technology{Name: name}
	require.NoError(t, e.db.Create(tech).Error)
	return tech
}

func projectFields(title string) map[string]string {
	return map[string]string{
		"title":       title,
		"description": "description of " + title,
	}
}

func TestCreateProjectRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	resp := env.doMultipart(t, http.MethodPost, "/projects/create",
		projectFields("Anonymous Project"), mediaFiles(1), "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	student := env.createUser(t, "student", "secret123", models.RoleStudent)
	token, err := env.tokens.IssueAccess(student)
	require.NoError(t, err)

	resp = env.doMultipart(t, http.MethodPost, "/projects/create",
		projectFields("Student Project"), mediaFiles(1), token)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateProjectMediaCount(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	resp := env.doMultipart(t, http.MethodPost, "/projects/create",
		projectFields("No Media"), nil, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "zero media files must be rejected")

	resp = env.doMultipart(t, http.MethodPost, "/projects/create",
		projectFields("Too Much Media"), mediaFiles(11), token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "eleven media files must be rejected")

	resp = env.doMultipart(t, http.MethodPost, "/projects/create",
		projectFields("Max Media"), mediaFiles(10), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Project
	decodeBody(t, resp, &created)
	assert.Len(t, created.Media, 10)
}

func TestCreateProjectRejectsBadMediaType(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	files := []formFile{{
		field:       "media",
		name:        "payload.exe",
		contentType: "application/octet-stream",
		content:     []byte("not an image"),
	}}
	resp := env.doMultipart(t, http.MethodPost, "/projects/create",
		projectFields("Bad Media"), files, token)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	decodeBody(t, resp, &body)
	assert.Contains(t, body.Error, "payload.exe")
}

func TestCreateProjectWithTechnologies(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)
	react := env.createTechnology(t, "React")
	golang := env.createTechnology(t, "Go")

	fields := projectFields("Linked Project")
	fields["technologies"] = react.ID.String() + "," + golang.ID.String()
	fields["submission_year"] = "2024"
	fields["github_link"] = "https://github.com/example/linked"

	resp := env.doMultipart(t, http.MethodPost, "/projects/create", fields, mediaFiles(2), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Project
	decodeBody(t, resp, &created)
	assert.Len(t, created.Technologies, 2)
	require.NotNil(t, created.SubmissionYear)
	assert.Equal(t, 2024, *created.SubmissionYear)
	require.NotNil(t, created.GithubLink)
	assert.Equal(t, "https://github.com/example/linked", *created.GithubLink)
}

func TestCreateProjectMissingTitle(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	resp := env.doMultipart(t, http.MethodPost, "/projects/create",
		map[string]string{"description": "no title"}, mediaFiles(1), token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateProjectPreservesMediaWhenNoneUploaded(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	resp := env.doMultipart(t, http.MethodPost, "/projects/create",
		projectFields("Media Keeper"), mediaFiles(3), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Project
	decodeBody(t, resp, &created)
	require.Len(t, created.Media, 3)

	fields := projectFields("Media Keeper Renamed")
	resp = env.doMultipart(t, http.MethodPut, "/projects/update/"+created.ID.String(), fields, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Project
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Media Keeper Renamed", updated.Title)
	assert.Equal(t, []string(created.Media), []string(updated.Media))
}

func TestUpdateProjectReplacesMediaWhenUploaded(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	resp := env.doMultipart(t, http.MethodPost, "/projects/create",
		projectFields("Media Swapper"), mediaFiles(3), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Project
	decodeBody(t, resp, &created)

	resp = env.doMultipart(t, http.MethodPut, "/projects/update/"+created.ID.String(),
		projectFields("Media Swapper"), mediaFiles(1), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Project
	decodeBody(t, resp, &updated)
	require.Len(t, updated.Media, 1)
	assert.NotContains(t, created.Media, updated.Media[0])
}

func TestUpdateProjectTechnologyLinks(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)
	react := env.createTechnology(t, "React")
	vue := env.createTechnology(t, "Vue")

	fields := projectFields("Link Shuffler")
	fields["technologies"] = react.ID.String()
	resp := env.doMultipart(t, http.MethodPost, "/projects/create", fields, mediaFiles(1), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Project
	decodeBody(t, resp, &created)
	require.Len(t, created.Technologies, 1)

	// No technologies field: the existing link set stays untouched.
	resp = env.doMultipart(t, http.MethodPut, "/projects/update/"+created.ID.String(),
		projectFields("Link Shuffler"), nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Project
	decodeBody(t, resp, &updated)
	require.Len(t, updated.Technologies, 1)
	assert.Equal(t, "React", updated.Technologies[0].Name)

	// Supplying a set replaces the links wholesale.
	fields = projectFields("Link Shuffler")
	fields["technologies"] = vue.ID.String()
	resp = env.doMultipart(t, http.MethodPut, "/projects/update/"+created.ID.String(), fields, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	decodeBody(t, resp, &updated)
	require.Len(t, updated.Technologies, 1)
	assert.Equal(t, "Vue", updated.Technologies[0].Name)
}

func TestUpdateMissingProject(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	resp := env.doMultipart(t, http.MethodPut, "/projects/update/"+uuid.NewString(),
		projectFields("Ghost"), nil, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetProject(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Lookup Target")

	resp := env.doJSON(t, http.MethodGet, "/projects/getOne/"+project.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.Project
	decodeBody(t, resp, &fetched)
	assert.Equal(t, "Lookup Target", fetched.Title)
	assert.NotNil(t, fetched.Technologies, "technologies must serialize as an array")

	resp = env.doJSON(t, http.MethodGet, "/projects/getOne/"+uuid.NewString(), nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.doJSON(t, http.MethodGet, "/projects/getOne/not-a-uuid", nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListProjectsFiltersAndPaginates(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 5; i++ {
		year := 2020 + i
		project := &models.Project{
			Title:          fmt.Sprintf("Catalog Entry %d", i),
			Description:    "catalog entry",
			SubmissionYear: &year,
		}
		require.NoError(t, env.db.Create(project).Error)
	}

	resp := env.doJSON(t, http.MethodGet, "/projects/", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var all ProjectCollection
	decodeBody(t, resp, &all)
	assert.Equal(t, 5, all.Total)
	assert.Len(t, all.Projects, 5)

	resp = env.doJSON(t, http.MethodGet, "/projects/?year=2022", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var filtered ProjectCollection
	decodeBody(t, resp, &filtered)
	require.Len(t, filtered.Projects, 1)
	assert.Equal(t, 2022, *filtered.Projects[0].SubmissionYear)

	resp = env.doJSON(t, http.MethodGet, "/projects/?page=2&limit=2", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var paged ProjectCollection
	decodeBody(t, resp, &paged)
	assert.Equal(t, 5, paged.Total, "total counts all matches, not the page")
	assert.Len(t, paged.Projects, 2)
	assert.Equal(t, 2, paged.Page)
}

func TestDeleteProject(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)
	project := env.createProject(t, "Doomed Project")

	resp := env.doJSON(t, http.MethodDelete, "/projects/delete/"+project.ID.String(), nil, token)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.doJSON(t, http.MethodGet, "/projects/getOne/"+project.ID.String(), nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.doJSON(t, http.MethodDelete, "/projects/delete/"+project.ID.String(), nil, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestImportCSV(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	csv := "title,description,submission_year\n" +
		"Imported One,first import,2023\n" +
		"Imported Two,second import,2024\n"
	files := []formFile{{
		field:       "file",
		name:        "projects.csv",
		contentType: "text/csv",
		content:     []byte(csv),
	}}

	resp := env.doMultipart(t, http.MethodPost, "/projects/import-csv", nil, files, token)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var count int64
	require.NoError(t, env.db.Model(&models.Project{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	resp = env.doMultipart(t, http.MethodPost, "/projects/import-csv", nil, nil, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
