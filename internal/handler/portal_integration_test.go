package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduboost/course-portal-api/internal/dto"
	"github.com/eduboost/course-portal-api/internal/middleware"
	"github.com/eduboost/course-portal-api/internal/models"
	"github.com/eduboost/course-portal-api/internal/repository"
	"github.com/eduboost/course-portal-api/internal/service"
	"github.com/eduboost/course-portal-api/pkg/config"
)

type portalFixture struct {
	router   *gin.Engine
	sessions *service.SessionService
}

func newPortalFixture(t *testing.T) *portalFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := repository.NewFileStore(filepath.Join(t.TempDir(), "portal.json"))
	require.NoError(t, err)

	limits := config.LimitsConfig{
		MaxContentLength:     12000,
		MaxPodcastTextLength: 8000,
		MaxPasswordLength:    256,
		MaxURLLength:         20000,
		MaxTitleLength:       180,
	}

	sessions := service.NewSessionService(service.SessionConfig{
		StudentSecret:   "student-secret",
		ProfessorSecret: "prof-secret",
		TTL:             time.Hour,
	}, nil)

	orders := service.NewOrderService(store.OrderStore(), nil)
	notes := service.NewNoteService(store.NoteStore(), orders, limits, nil)
	resources := service.NewResourceService(store.ResourceStore(), orders, limits, nil)

	authHandler := NewAuthHandler(sessions, nil, limits.MaxPasswordLength)
	noteHandler := NewNoteHandler(notes)
	resourceHandler := NewResourceHandler(resources)
	orderHandler := NewOrderHandler(orders)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/prof-login", authHandler.ProfessorLogin)
	api.GET("/auth/status", authHandler.Status)

	authed := api.Group("")
	authed.Use(middleware.RequireSession(sessions))
	authed.GET("/notes", noteHandler.List)
	authed.GET("/resources", resourceHandler.List)

	professor := api.Group("")
	professor.Use(middleware.RequireProfessor(sessions, nil))
	professor.POST("/notes", noteHandler.Create)
	professor.PUT("/notes/:id", noteHandler.Update)
	professor.DELETE("/notes/:id", noteHandler.Delete)
	professor.PUT("/order", orderHandler.Set)

	return &portalFixture{router: r, sessions: sessions}
}

func (f *portalFixture) do(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *portalFixture) login(t *testing.T, path, password string) string {
	t.Helper()
	w := f.do(t, http.MethodPost, path, "", dto.LoginRequest{Password: password})
	require.Equal(t, http.StatusCreated, w.Code)

	var res dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

func TestLoginIssuesRoleScopedTokens(t *testing.T) {
	f := newPortalFixture(t)

	w := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Password: "student-secret"})
	require.Equal(t, http.StatusCreated, w.Code)

	var res dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, models.RoleStudent, res.Role)
	assert.Equal(t, time.Hour.Milliseconds(), res.TTLMs)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := newPortalFixture(t)

	w := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Password: "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeErrorCode(t, w))
}

func TestAuthStatusReflectsSession(t *testing.T) {
	f := newPortalFixture(t)

	w := f.do(t, http.MethodGet, "/api/auth/status", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var anon dto.AuthStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &anon))
	assert.True(t, anon.AuthEnabled)
	assert.False(t, anon.Authenticated)

	token := f.login(t, "/api/auth/prof-login", "prof-secret")
	w = f.do(t, http.MethodGet, "/api/auth/status", token, nil)
	var authed dto.AuthStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &authed))
	assert.True(t, authed.Authenticated)
	assert.Equal(t, models.RoleProfessor, authed.Role)
}

func TestNotesRequireSession(t *testing.T) {
	f := newPortalFixture(t)

	w := f.do(t, http.MethodGet, "/api/notes?courseId=math", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeErrorCode(t, w))
}

func TestStudentCannotMutate(t *testing.T) {
	f := newPortalFixture(t)
	token := f.login(t, "/api/auth/login", "student-secret")

	w := f.do(t, http.MethodPost, "/api/notes", token, dto.CreateNoteRequest{
		CourseID: "math", Title: "t", Content: "c",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", decodeErrorCode(t, w))
}

func TestProfessorNoteLifecycleWithReorder(t *testing.T) {
	f := newPortalFixture(t)
	prof := f.login(t, "/api/auth/prof-login", "prof-secret")
	student := f.login(t, "/api/auth/login", "student-secret")

	var created []string
	for _, title := range []string{"A", "B", "C"} {
		w := f.do(t, http.MethodPost, "/api/notes", prof, dto.CreateNoteRequest{
			CourseID: "math", Title: title, Content: "contenu " + title,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		var res dto.NoteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		created = append(created, res.Note.ID)
	}

	// Creation order is newest first.
	w := f.do(t, http.MethodGet, "/api/notes?courseId=math", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing dto.NotesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing.Notes, 3)
	assert.Equal(t, created[2], listing.Notes[0].ID)

	// The professor reorders; the student sees the stored order.
	reordered := []string{created[0], created[2], created[1]}
	w = f.do(t, http.MethodPut, "/api/order", prof, dto.SetOrderRequest{
		EntityType: "notes", CourseID: "math", OrderedIDs: reordered,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/notes?courseId=math", student, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	for i, id := range reordered {
		assert.Equal(t, id, listing.Notes[i].ID)
	}

	// Deleting by id alone keeps the remaining order intact.
	w = f.do(t, http.MethodDelete, "/api/notes/"+created[2], prof, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/notes?courseId=math", student, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing.Notes, 2)
	assert.Equal(t, created[0], listing.Notes[0].ID)
	assert.Equal(t, created[1], listing.Notes[1].ID)
}

func TestProfessorNoteEditKeepsPosition(t *testing.T) {
	f := newPortalFixture(t)
	prof := f.login(t, "/api/auth/prof-login", "prof-secret")

	var created []string
	for _, title := range []string{"A", "B"} {
		w := f.do(t, http.MethodPost, "/api/notes", prof, dto.CreateNoteRequest{
			CourseID: "math", Title: title, Content: "contenu " + title,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		var res dto.NoteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		created = append(created, res.Note.ID)
	}

	w := f.do(t, http.MethodPut, "/api/notes/"+created[0], prof, dto.UpdateNoteRequest{
		Title: "A revisité", Content: "nouveau contenu",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated dto.NoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, created[0], updated.Note.ID)
	assert.Equal(t, "math", updated.Note.CourseID)

	// Listing still shows B first; A carries the new title in place.
	w = f.do(t, http.MethodGet, "/api/notes?courseId=math", prof, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing dto.NotesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing.Notes, 2)
	assert.Equal(t, created[1], listing.Notes[0].ID)
	assert.Equal(t, "A revisité", listing.Notes[1].Title)

	w = f.do(t, http.MethodPut, "/api/notes/inconnu", prof, dto.UpdateNoteRequest{
		Title: "t", Content: "c",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeErrorCode(t, w))
}

func TestOrderEndpointRejectsStudent(t *testing.T) {
	f := newPortalFixture(t)
	student := f.login(t, "/api/auth/login", "student-secret")

	w := f.do(t, http.MethodPut, "/api/order", student, dto.SetOrderRequest{
		EntityType: "notes", CourseID: "math", OrderedIDs: []string{"a"},
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestOrderEndpointValidatesEntityType(t *testing.T) {
	f := newPortalFixture(t)
	prof := f.login(t, "/api/auth/prof-login", "prof-secret")

	w := f.do(t, http.MethodPut, "/api/order", prof, dto.SetOrderRequest{
		EntityType: "courses", CourseID: "math", OrderedIDs: []string{"a"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", decodeErrorCode(t, w))
}
