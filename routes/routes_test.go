package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobly/apperr"
	"jobly/auth"
	"jobly/handlers"
	"jobly/middleware"
	"jobly/models"
)

// Stub repositories with just enough state to exercise every route.

type stubCompanyRepo struct {
	companies map[string]*models.Company
}

func (s *stubCompanyRepo) FindAll(models.CompanyFilter) ([]models.CompanySummary, error) {
	out := []models.CompanySummary{}
	for _, c := range s.companies {
		out = append(out, models.CompanySummary{Handle: c.Handle, Name: c.Name})
	}
	return out, nil
}

func (s *stubCompanyRepo) FindOne(handle string) (*models.Company, error) {
	c, ok := s.companies[handle]
	if !ok {
		return nil, apperr.NotFound(fmt.Sprintf("There is no company with handle of %s", handle))
	}
	return c, nil
}

func (s *stubCompanyRepo) Create(data models.CompanyCreate) (*models.Company, error) {
	if _, ok := s.companies[data.Handle]; ok {
		return nil, apperr.Constraint("duplicate value violates unique constraint: companies_pkey")
	}
	c := &models.Company{Handle: data.Handle, Name: data.Name}
	s.companies[c.Handle] = c
	return c, nil
}

func (s *stubCompanyRepo) Update(handle string, changes map[string]interface{}) (*models.Company, error) {
	c, err := s.FindOne(handle)
	if err != nil {
		return nil, err
	}
	if name, ok := changes["name"].(string); ok {
		c.Name = name
	}
	return c, nil
}

func (s *stubCompanyRepo) Delete(handle string) (string, error) {
	if _, err := s.FindOne(handle); err != nil {
		return "", err
	}
	delete(s.companies, handle)
	return handle, nil
}

type stubJobRepo struct {
	companies *stubCompanyRepo
	jobs      map[int64]*models.Job
	nextID    int64
}

func (s *stubJobRepo) FindAll(models.JobFilter) ([]models.JobSummary, error) {
	out := []models.JobSummary{}
	for _, j := range s.jobs {
		out = append(out, models.JobSummary{Title: j.Title, CompanyHandle: j.CompanyHandle})
	}
	return out, nil
}

func (s *stubJobRepo) FindOne(id int64) (*models.Job, error) {
	j, ok := s.jobs[id]
	if !ok {
		return nil, apperr.NotFound(fmt.Sprintf("There is no job with the id of %d", id))
	}
	return j, nil
}

func (s *stubJobRepo) Create(data models.JobCreate) (*models.Job, error) {
	if _, ok := s.companies.companies[data.CompanyHandle]; !ok {
		return nil, apperr.Constraint("foreign key violation: jobs_company_handle_fkey")
	}
	s.nextID++
	j := &models.Job{ID: s.nextID, Title: data.Title, Salary: *data.Salary, CompanyHandle: data.CompanyHandle, DatePosted: time.Now()}
	s.jobs[j.ID] = j
	return j, nil
}

func (s *stubJobRepo) Update(id int64, changes map[string]interface{}) (*models.Job, error) {
	j, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}
	if title, ok := changes["title"].(string); ok {
		j.Title = title
	}
	return j, nil
}

func (s *stubJobRepo) Delete(id int64) (int64, error) {
	if _, err := s.FindOne(id); err != nil {
		return 0, err
	}
	delete(s.jobs, id)
	return id, nil
}

type stubUserRepo struct {
	users map[string]*models.User
}

func (s *stubUserRepo) FindAll() ([]models.UserSummary, error) {
	out := []models.UserSummary{}
	for _, u := range s.users {
		out = append(out, models.UserSummary{Username: u.Username, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email})
	}
	return out, nil
}

func (s *stubUserRepo) FindOne(username string) (*models.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, apperr.NotFound(fmt.Sprintf("Could not locate the user with username %s", username))
	}
	return u, nil
}

func (s *stubUserRepo) Create(data models.UserCreate, hashedPassword string) (*models.User, error) {
	if _, ok := s.users[data.Username]; ok {
		return nil, apperr.Constraint("duplicate value violates unique constraint: users_pkey")
	}
	u := &models.User{Username: data.Username, Password: hashedPassword, FirstName: data.FirstName, LastName: data.LastName, Email: data.Email}
	s.users[u.Username] = u
	return u, nil
}

func (s *stubUserRepo) Update(username string, changes map[string]interface{}) (*models.User, error) {
	u, err := s.FindOne(username)
	if err != nil {
		return nil, err
	}
	if first, ok := changes["first_name"].(string); ok {
		u.FirstName = first
	}
	return u, nil
}

func (s *stubUserRepo) Delete(username string) (string, error) {
	if _, err := s.FindOne(username); err != nil {
		return "", err
	}
	delete(s.users, username)
	return username, nil
}

type testServer struct {
	handler http.Handler
	tokens  *auth.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	companies := &stubCompanyRepo{companies: map[string]*models.Company{
		"acme": {Handle: "acme", Name: "Acme Corp"},
	}}
	jobs := &stubJobRepo{companies: companies, jobs: map[int64]*models.Job{}}
	users := &stubUserRepo{users: map[string]*models.User{}}

	tokens := auth.NewTokenService("test-secret", time.Hour)
	hasher := auth.NewPasswordHasher(4)

	handler := New(
		&handlers.CompanyHandler{Repo: companies},
		&handlers.JobHandler{Repo: jobs},
		&handlers.UserHandler{Repo: users, Hasher: hasher, Tokens: tokens},
		&handlers.PhotoHandler{Repo: users},
		middleware.New(tokens),
	)
	return &testServer{handler: handler, tokens: tokens}
}

func (ts *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) token(t *testing.T, username string, isAdmin bool) string {
	t.Helper()
	token, err := ts.tokens.Issue(username, isAdmin)
	require.NoError(t, err)
	return token
}

func TestReadsAllowAnonymous(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/companies", "/companies/acme", "/jobs", "/users"} {
		rec := ts.do(t, "GET", path, "", "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestReadsRejectInvalidToken(t *testing.T) {
	ts := newTestServer(t)

	// A garbage token is not the same as no token at all.
	rec := ts.do(t, "GET", "/companies", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"status": 401, "message": "Unauthorized"}`, rec.Body.String())

	rec = ts.do(t, "GET", "/companies", ts.token(t, "someone", false), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCompanyWritesRequireAdmin(t *testing.T) {
	ts := newTestServer(t)
	body := `{"handle":"ibm","name":"IBM"}`

	rec := ts.do(t, "POST", "/companies", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, "POST", "/companies", ts.token(t, "plain", false), body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, "POST", "/companies", ts.token(t, "boss", true), body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, "PATCH", "/companies/ibm", ts.token(t, "plain", false), `{"name":"IBM Inc"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, "DELETE", "/companies/ibm", ts.token(t, "boss", true), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJobWritesRequireAdmin(t *testing.T) {
	ts := newTestServer(t)
	body := `{"title":"Engineer","salary":100000,"company_handle":"acme"}`

	rec := ts.do(t, "POST", "/jobs", ts.token(t, "plain", false), body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, "POST", "/jobs", ts.token(t, "boss", true), body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, "PATCH", "/jobs/1", ts.token(t, "boss", true), `{"title":"Sr Engineer"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, "DELETE", "/jobs/1", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJobCreate_UnknownCompanyIsConstraint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, "POST", "/jobs", ts.token(t, "boss", true),
		`{"title":"Engineer","salary":100000,"company_handle":"ghost"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "jobs_company_handle_fkey")
}

func TestUserMutationRequiresOwner(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, "POST", "/users", "",
		`{"username":"alice","password":"pw","first_name":"Alice","last_name":"A","email":"a@x.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	patch := `{"first_name":"Alicia"}`

	rec = ts.do(t, "PATCH", "/users/alice", "", patch)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, "PATCH", "/users/alice", ts.token(t, "bob", false), patch)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Admin status does not override ownership on user routes.
	rec = ts.do(t, "PATCH", "/users/alice", ts.token(t, "bob", true), patch)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, "PATCH", "/users/alice", ts.token(t, "alice", false), patch)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, "DELETE", "/users/alice", ts.token(t, "bob", false), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, "DELETE", "/users/alice", ts.token(t, "alice", false), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSignupThenLoginFlow(t *testing.T) {
	ts := newTestServer(t)
	signup := `{"username":"alice","password":"pw","first_name":"Alice","last_name":"A","email":"a@x.com"}`

	rec := ts.do(t, "POST", "/users", "", signup)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Second signup with the same username surfaces as a storage constraint.
	rec = ts.do(t, "POST", "/users", "", signup)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":500`)

	rec = ts.do(t, "POST", "/users/login", "", `{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Logged In!")
}

func TestUnknownRouteUsesErrorEnvelope(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, "GET", "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"status":404`)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, "GET", "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, "OPTIONS", "/companies", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), middleware.TokenHeader)
}
