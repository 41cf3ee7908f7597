package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/showcasehub/backend/database"
	"github.com/showcasehub/backend/models"
	"github.com/showcasehub/backend/services"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	repos  database.Database
	tokens *services.TokenService
	media  *services.MediaStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	repos := database.New(db)
	tokens := services.NewTokenService("test-access-secret", "test-refresh-secret", time.Hour, 30*24*time.Hour)
	media, err := services.NewMediaStore(t.TempDir())
	require.NoError(t, err)

	router := newRouter(repos, tokens, media)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{server: server, db: db, repos: repos, tokens: tokens, media: media}
}

func (e *testEnv) createUser(t *testing.T, username, password, role string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Name:         "Test " + username,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()

	admin := e.createUser(t, "admin_"+uniqueSuffix(t), "adminpass", models.RoleAdmin)
	token, err := e.tokens.IssueAccess(admin)
	require.NoError(t, err)
	return token
}

var suffixCounter int

func uniqueSuffix(t *testing.T) string {
	t.Helper()
	suffixCounter++
	return fmt.Sprintf("%d", suffixCounter)
}

func (e *testEnv) doJSON(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

type formFile struct {
	field       string
	name        string
	contentType string
	content     []byte
}

func multipartBody(t *testing.T, fields map[string]string, files []formFile) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, file := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="%s"; filename="%s"`, file.field, file.name))
		header.Set("Content-Type", file.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func (e *testEnv) doMultipart(t *testing.T, method, path string, fields map[string]string, files []formFile, token string) *http.Response {
	t.Helper()

	body, contentType := multipartBody(t, fields, files)
	req, err := http.NewRequest(method, e.server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func mediaFiles(n int) []formFile {
	files := make([]formFile, n)
	for i := range files {
		files[i] = formFile{
			field:       "media",
			name:        fmt.Sprintf("shot-%d.png", i),
			contentType: "image/png",
			content:     []byte("png bytes"),
		}
	}
	return files
}
