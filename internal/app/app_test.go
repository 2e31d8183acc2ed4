package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursedesk/coursedesk-panel/internal/config"
	"github.com/coursedesk/coursedesk-panel/internal/model"
)

// fakeBackend mimics the flat REST backend the panel talks to.
type fakeBackend struct {
	mu          sync.Mutex
	users       []model.User
	courses     []model.Course
	enrollments []model.Enrollment
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	var id int64
	if len(parts) > 1 {
		id, _ = strconv.ParseInt(parts[1], 10, 64)
	}

	writeJSON := func(v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	switch parts[0] {
	case "users":
		switch {
		case r.Method == http.MethodGet && len(parts) == 1:
			writeJSON(f.users)
		case r.Method == http.MethodGet:
			for _, u := range f.users {
				if u.ID == id {
					writeJSON(u)
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPost:
			var u model.User
			_ = json.NewDecoder(r.Body).Decode(&u)
			f.users = append(f.users, u)
			w.WriteHeader(http.StatusCreated)
			writeJSON(u)
		}
	case "courses":
		if r.Method == http.MethodGet {
			writeJSON(f.courses)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case "enrollments":
		switch {
		case r.Method == http.MethodGet:
			writeJSON(f.enrollments)
		case r.Method == http.MethodPost:
			var e model.Enrollment
			_ = json.NewDecoder(r.Body).Decode(&e)
			f.enrollments = append(f.enrollments, e)
			w.WriteHeader(http.StatusCreated)
			writeJSON(e)
		case r.Method == http.MethodDelete:
			for i := range f.enrollments {
				if f.enrollments[i].ID == id {
					f.enrollments = append(f.enrollments[:i], f.enrollments[i+1:]...)
					writeJSON(struct{}{})
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
		}
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// browser drives the panel engine while carrying cookies across requests.
type browser struct {
	t       *testing.T
	engine  *gin.Engine
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, engine *gin.Engine) *browser {
	return &browser{t: t, engine: engine, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, cookie := range b.cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	b.engine.ServeHTTP(w, req)
	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(b.cookies, cookie.Name)
			continue
		}
		b.cookies[cookie.Name] = cookie
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func newTestApp(t *testing.T) (*App, *fakeBackend) {
	t.Helper()

	fake := &fakeBackend{
		users: []model.User{
			{ID: 1, Name: "Admin", Email: "admin@example.com", Password: "admin123", Role: model.RoleAdmin},
			{ID: 2, Name: "Visitor", Email: "visitor@example.com", Password: "visitor123", Role: model.RoleVisitor},
		},
		courses: []model.Course{
			{ID: 10, Title: "Intro to Go", Description: "Learn Go from first principles.", StartDate: "2026-09-01", Duration: "8 weeks"},
		},
	}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		GinMode:        gin.TestMode,
		BackendURL:     srv.URL,
		SessionSecret:  "test-secret-not-for-production",
		SessionBackend: config.SessionBackendCookie,
		SessionTTL:     time.Hour,
	}

	a, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	return a, fake
}

func login(t *testing.T, b *browser, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return b.post("/login", url.Values{"email": {email}, "password": {password}})
}

func TestAdminLoginFlow(t *testing.T) {
	a, _ := newTestApp(t)
	b := newBrowser(t, a.Engine)

	w := login(t, b, "admin@example.com", "admin123")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	w = b.get("/dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Total Users")
	assert.Contains(t, w.Body.String(), "Admin")
}

func TestVisitorLandsOnCatalog(t *testing.T) {
	a, _ := newTestApp(t)
	b := newBrowser(t, a.Engine)

	w := login(t, b, "visitor@example.com", "visitor123")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/public", w.Header().Get("Location"))

	// Admin pages stay closed to visitors.
	w = b.get("/dashboard")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestWrongPasswordRerendersLogin(t *testing.T) {
	a, _ := newTestApp(t)
	b := newBrowser(t, a.Engine)

	w := login(t, b, "admin@example.com", "wrong-password")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")

	// No session was established.
	w = b.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestLogoutEndsSession(t *testing.T) {
	a, _ := newTestApp(t)
	b := newBrowser(t, a.Engine)

	login(t, b, "admin@example.com", "admin123")

	w := b.post("/logout", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = b.get("/dashboard")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestUnknownPathFallsBackToRoot(t *testing.T) {
	a, _ := newTestApp(t)
	b := newBrowser(t, a.Engine)

	w := b.get("/no/such/page")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sign In")
}

func TestRegisterFlow(t *testing.T) {
	a, fake := newTestApp(t)
	b := newBrowser(t, a.Engine)

	w := b.post("/register", url.Values{
		"name":         {"New User"},
		"email":        {"new@example.com"},
		"password":     {"secret1"},
		"phone":        {"+1 (555) 123-4567"},
		"enrollNumber": {"ENR2026000001"},
		"role":         {"visitor"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/public", w.Header().Get("Location"))
	assert.Len(t, fake.users, 3)

	// Registration doubles as login.
	w = b.get("/my-courses")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	a, fake := newTestApp(t)
	b := newBrowser(t, a.Engine)

	w := b.post("/register", url.Values{
		"name":         {"Imposter"},
		"email":        {"admin@example.com"},
		"password":     {"secret1"},
		"phone":        {"+1 (555) 123-4567"},
		"enrollNumber": {"ENR2026000002"},
		"role":         {"visitor"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "User with this email already exists")
	assert.Len(t, fake.users, 2)
}

func TestEnrollmentFlow(t *testing.T) {
	a, fake := newTestApp(t)
	b := newBrowser(t, a.Engine)

	login(t, b, "visitor@example.com", "visitor123")

	w := b.post("/enrollments", url.Values{"courseId": {"10"}, "return": {"/public"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/public", w.Header().Get("Location"))
	require.Len(t, fake.enrollments, 1)
	assert.Equal(t, int64(2), fake.enrollments[0].UserID)
	assert.Equal(t, int64(10), fake.enrollments[0].CourseID)

	// The flash banner shows on the next page load, then disappears.
	w = b.get("/public")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Successfully enrolled in course")

	w = b.get("/my-courses")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Intro to Go")

	// Enrolling twice in the same course is rejected.
	w = b.post("/enrollments", url.Values{"courseId": {"10"}, "return": {"/public"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	w = b.get("/public")
	assert.Contains(t, w.Body.String(), "Already enrolled in this course")
	assert.Len(t, fake.enrollments, 1)

	// Unenroll removes the record.
	id := strconv.FormatInt(fake.enrollments[0].ID, 10)
	w = b.post("/enrollments/"+id+"/delete", url.Values{"return": {"/my-courses"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, fake.enrollments)
}

func TestUsersPageSearchAndRoleFilter(t *testing.T) {
	a, _ := newTestApp(t)
	b := newBrowser(t, a.Engine)

	login(t, b, "admin@example.com", "admin123")

	w := b.get("/users?q=visitor")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "visitor@example.com")
	assert.NotContains(t, w.Body.String(), "admin@example.com")

	w = b.get("/users?role=admin")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@example.com")
	assert.NotContains(t, w.Body.String(), "visitor@example.com")

	// An unmatched search leaves the table empty.
	w = b.get("/users?q=visitor&role=admin")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No users found")
}

func TestReturnParamRejectsExternalTargets(t *testing.T) {
	a, _ := newTestApp(t)
	b := newBrowser(t, a.Engine)

	login(t, b, "visitor@example.com", "visitor123")

	// Protocol-relative and absolute URLs fall back to the default page.
	w := b.post("/enrollments", url.Values{"courseId": {"10"}, "return": {"//evil.example"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/public", w.Header().Get("Location"))

	w = b.post("/enrollments", url.Values{"courseId": {"99"}, "return": {"https://evil.example"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/public", w.Header().Get("Location"))
}

func TestEnrollmentRequiresLogin(t *testing.T) {
	a, fake := newTestApp(t)
	b := newBrowser(t, a.Engine)

	w := b.post("/enrollments", url.Values{"courseId": {"10"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Empty(t, fake.enrollments)
}

func TestHealthz(t *testing.T) {
	a, _ := newTestApp(t)
	b := newBrowser(t, a.Engine)

	w := b.get("/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
