package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/noteful/internal/config"
	"github.com/deppfellow/noteful/internal/errs"
	"github.com/deppfellow/noteful/internal/handler"
	"github.com/deppfellow/noteful/internal/repository"
	"github.com/deppfellow/noteful/internal/server"
	"github.com/deppfellow/noteful/internal/service"
)

type testAPI struct {
	t      *testing.T
	router *echo.Echo
}

func newTestAPI(t *testing.T, configure ...func(*config.Config)) *testAPI {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Primary.Env = "test"
	cfg.Database.Driver = config.DriverMemory
	for _, fn := range configure {
		fn(cfg)
	}

	log := zerolog.Nop()
	s := &server.Server{Config: cfg, Logger: &log}
	services := service.NewServices(repository.NewRepositories(s))

	return &testAPI{t: t, router: NewRouter(s, handler.NewHandlers(s, services))}
}

func (a *testAPI) do(method, target, body string) *httptest.ResponseRecorder {
	a.t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) createFolder(name string) handler.FolderResponse {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/folders", `{"folder_name":`+quote(name)+`}`)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var folder handler.FolderResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &folder))
	return folder
}

func (a *testAPI) createNote(body string) handler.NoteResponse {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/notes", body)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var note handler.NoteResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &note))
	return note
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errs.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Error.Message
}

func TestFolderEndpoints(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/folders", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/folders", `{"folder_name":"Test"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/folders/1", rec.Header().Get(echo.HeaderLocation))

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Len(t, created, 3)
	assert.EqualValues(t, 1, created["id"])
	assert.Equal(t, "Test", created["folder_name"])
	assert.NotEmpty(t, created["date_created"])

	// the created body is exactly what a later GET returns
	got := api.do(http.MethodGet, "/api/folders/1", "")
	assert.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, rec.Body.String(), got.Body.String())

	api.createFolder("Super")
	rec = api.do(http.MethodGet, "/api/folders/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var all []handler.FolderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 2)
	assert.Equal(t, "Test", all[0].FolderName)
	assert.Equal(t, "Super", all[1].FolderName)

	rec = api.do(http.MethodPatch, "/api/folders/1", `{"folder_name":"Renamed"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/folders/1", "")
	var renamed handler.FolderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &renamed))
	assert.Equal(t, "Renamed", renamed.FolderName)

	rec = api.do(http.MethodDelete, "/api/folders/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodDelete, "/api/folders/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Folder doesn't exist", errorMessage(t, rec))
}

func TestFolderValidation(t *testing.T) {
	api := newTestAPI(t)
	api.createFolder("Important")

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		status  int
		message string
	}{
		{name: "post without name", method: http.MethodPost, path: "/api/folders", body: `{"other":"x"}`, status: http.StatusBadRequest, message: "Missing folder name in request body"},
		{name: "post empty name", method: http.MethodPost, path: "/api/folders", body: `{"folder_name":""}`, status: http.StatusBadRequest, message: "Missing folder name in request body"},
		{name: "post no body", method: http.MethodPost, path: "/api/folders", status: http.StatusBadRequest, message: "Missing folder name in request body"},
		{name: "patch empty body", method: http.MethodPatch, path: "/api/folders/1", body: `{}`, status: http.StatusBadRequest, message: "Request body must contain 'folder_name'"},
		{name: "patch unknown folder", method: http.MethodPatch, path: "/api/folders/99", body: `{"folder_name":"x"}`, status: http.StatusNotFound, message: "Folder doesn't exist"},
		{name: "get unknown folder", method: http.MethodGet, path: "/api/folders/99", status: http.StatusNotFound, message: "Folder doesn't exist"},
		{name: "get non numeric id", method: http.MethodGet, path: "/api/folders/abc", status: http.StatusNotFound, message: "Folder doesn't exist"},
		{name: "malformed json", method: http.MethodPost, path: "/api/folders", body: `{"folder_name":`, status: http.StatusBadRequest, message: "Malformed request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, errorMessage(t, rec))
		})
	}
}

func TestFolderPatchDisabled(t *testing.T) {
	api := newTestAPI(t, func(cfg *config.Config) {
		cfg.Features.FolderPatch = false
	})
	api.createFolder("Important")

	rec := api.do(http.MethodPatch, "/api/folders/1", `{"folder_name":"x"}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method Not Allowed", errorMessage(t, rec))

	rec = api.do(http.MethodGet, "/api/folders/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNoteEndpoints(t *testing.T) {
	api := newTestAPI(t)
	important := api.createFolder("Important")
	super := api.createFolder("Super")

	rec := api.do(http.MethodPost, "/api/notes", `{"note_name":"Dogs","note_text":"Corgis are the best","folderid":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/notes/1", rec.Header().Get(echo.HeaderLocation))

	var created handler.NoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Dogs", created.NoteName)
	assert.Equal(t, "Corgis are the best", created.NoteText)
	assert.Equal(t, important.ID, created.FolderID)
	assert.False(t, created.Modified.IsZero())

	got := api.do(http.MethodGet, "/api/notes/1", "")
	assert.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, rec.Body.String(), got.Body.String())

	// partial update keeps the omitted fields
	rec = api.do(http.MethodPatch, "/api/notes/1", `{"note_name":"Cats","folderid":2}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, "/api/notes/1", "")
	var updated handler.NoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Cats", updated.NoteName)
	assert.Equal(t, "Corgis are the best", updated.NoteText)
	assert.Equal(t, super.ID, updated.FolderID)
	assert.False(t, updated.Modified.Before(created.Modified))

	api.createNote(`{"note_name":"Birds","note_text":"","folderid":1}`)
	rec = api.do(http.MethodGet, "/api/notes", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var all []handler.NoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 2)
	assert.Equal(t, "Birds", all[1].NoteName)

	rec = api.do(http.MethodDelete, "/api/notes/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodDelete, "/api/notes/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Note doesn't exist", errorMessage(t, rec))
}

func TestNoteValidation(t *testing.T) {
	api := newTestAPI(t)
	api.createFolder("Important")
	api.createNote(`{"note_name":"Dogs","note_text":"text","folderid":1}`)

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		status  int
		message string
	}{
		{name: "missing note_name", method: http.MethodPost, path: "/api/notes", body: `{"note_text":"t","folderid":1}`, status: http.StatusBadRequest, message: "Missing 'note_name' in request body"},
		{name: "missing note_text", method: http.MethodPost, path: "/api/notes", body: `{"note_name":"n","folderid":1}`, status: http.StatusBadRequest, message: "Missing 'note_text' in request body"},
		{name: "null folderid", method: http.MethodPost, path: "/api/notes", body: `{"note_name":"n","note_text":"t","folderid":null}`, status: http.StatusBadRequest, message: "Missing 'folderid' in request body"},
		{name: "first missing wins", method: http.MethodPost, path: "/api/notes", body: `{}`, status: http.StatusBadRequest, message: "Missing 'note_name' in request body"},
		{name: "unknown folder", method: http.MethodPost, path: "/api/notes", body: `{"note_name":"n","note_text":"t","folderid":42}`, status: http.StatusBadRequest, message: "The referenced Folder does not exist"},
		{name: "patch without fields", method: http.MethodPatch, path: "/api/notes/1", body: `{"irrelevant":"x"}`, status: http.StatusBadRequest, message: "Request body must contain 'note_name', 'note_text', or 'folderid'"},
		{name: "patch only falsy fields", method: http.MethodPatch, path: "/api/notes/1", body: `{"note_name":"","folderid":0}`, status: http.StatusBadRequest, message: "Request body must contain 'note_name', 'note_text', or 'folderid'"},
		{name: "patch unknown folder", method: http.MethodPatch, path: "/api/notes/1", body: `{"folderid":42}`, status: http.StatusBadRequest, message: "The referenced Folder does not exist"},
		{name: "patch unknown note", method: http.MethodPatch, path: "/api/notes/99", body: `{"note_name":"x"}`, status: http.StatusNotFound, message: "Note doesn't exist"},
		{name: "get unknown note", method: http.MethodGet, path: "/api/notes/99", status: http.StatusNotFound, message: "Note doesn't exist"},
		{name: "wrong folderid type", method: http.MethodPost, path: "/api/notes", body: `{"note_name":"n","note_text":"t","folderid":"one"}`, status: http.StatusBadRequest, message: "Malformed request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, errorMessage(t, rec))
		})
	}
}

func TestDeletingFolderRemovesItsNotes(t *testing.T) {
	api := newTestAPI(t)
	api.createFolder("Important")
	api.createNote(`{"note_name":"Dogs","note_text":"text","folderid":1}`)

	rec := api.do(http.MethodDelete, "/api/folders/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, "/api/notes/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResponsesNeutralizeMarkup(t *testing.T) {
	api := newTestAPI(t)
	malicious := `Naughty <script>alert("xss");</script> <img src="x" onerror="alert(document.cookie)">`

	rec := api.do(http.MethodPost, "/api/folders", `{"folder_name":`+quote(malicious)+`}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var folder handler.FolderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &folder))
	assert.Equal(t, int64(1), folder.ID)
	assertNeutralized(t, folder.FolderName)

	note := api.createNote(`{"note_name":` + quote(malicious) + `,"note_text":` + quote(malicious) + `,"folderid":1}`)
	assert.Equal(t, int64(1), note.ID)
	assert.Equal(t, int64(1), note.FolderID)
	assertNeutralized(t, note.NoteName)
	assertNeutralized(t, note.NoteText)

	for _, path := range []string{"/api/folders", "/api/folders/1", "/api/notes", "/api/notes/1"} {
		rec := api.do(http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assertNeutralized(t, rec.Body.String())
	}
}

func assertNeutralized(t *testing.T, s string) {
	t.Helper()
	assert.NotContains(t, s, "<script")
	assert.NotContains(t, s, "onerror")
	assert.Contains(t, s, "Naughty")
}

func TestResponsesKeepPlainPunctuation(t *testing.T) {
	api := newTestAPI(t)
	name := `Bob's "to-do" & misc`

	folder := api.createFolder(name)
	assert.Equal(t, name, folder.FolderName)

	rec := api.do(http.MethodPatch, "/api/folders/1", `{"folder_name":"a < b"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, "/api/folders/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got handler.FolderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "a &lt; b", got.FolderName)

	note := api.createNote(`{"note_name":` + quote(name) + `,"note_text":"it's 5 > 3","folderid":1}`)
	assert.Equal(t, name, note.NoteName)
	assert.Equal(t, "it's 5 &gt; 3", note.NoteText)
}

func TestRateLimitedResponsesCarryRequestID(t *testing.T) {
	api := newTestAPI(t, func(cfg *config.Config) {
		cfg.Server.RateLimit = 1
	})

	rec := api.do(http.MethodGet, "/api/folders", "")
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/folders", nil)
	req.Header.Set("X-Request-ID", "limited-1")
	rec = httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too Many Requests", errorMessage(t, rec))
	assert.Equal(t, "limited-1", rec.Header().Get("X-Request-ID"))
}

func TestNonJSONBodyIsTreatedAsEmpty(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/folders", strings.NewReader("folder_name=Test"))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.MissingFolderNameMessage, errorMessage(t, rec))
}

func TestSystemRoutes(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var health handler.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "memory", health.Checks["database"].Driver)

	rec = api.do(http.MethodGet, "/docs", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/static/openapi.json")

	rec = api.do(http.MethodGet, "/static/openapi.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, json.Valid(rec.Body.Bytes()))

	rec = api.do(http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", errorMessage(t, rec))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
