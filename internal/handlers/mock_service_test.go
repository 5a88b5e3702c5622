package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"blogapp/internal/models"
	"blogapp/internal/service"
	"blogapp/internal/session"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerErr error
	loginSess   models.Session
	loginErr    error
	logoutCalls int

	lastUsername string
	lastPassword string
}

func (m *mockAuth) Register(ctx context.Context, username, password string) error {
	m.lastUsername = username
	m.lastPassword = password
	return m.registerErr
}
func (m *mockAuth) Login(ctx context.Context, username, password string) (models.Session, error) {
	m.lastUsername = username
	m.lastPassword = password
	return m.loginSess, m.loginErr
}
func (m *mockAuth) Logout(sess *models.Session) {
	m.logoutCalls++
	sess.Clear()
}

type mockBlog struct {
	posts     []models.Post
	listErr   error
	post      models.Post
	getErr    error
	editErr   error
	created   models.Post
	createErr error
	updateErr error
	deleteErr error

	lastPage  service.Page
	lastSess  models.Session
	lastID    int
	lastTitle string
	lastBody  string
	calls     int
}

func (m *mockBlog) List(ctx context.Context, page service.Page) ([]models.Post, error) {
	m.lastPage = page
	return m.posts, m.listErr
}
func (m *mockBlog) Get(ctx context.Context, id int) (models.Post, error) {
	m.lastID = id
	return m.post, m.getErr
}
func (m *mockBlog) GetForEdit(ctx context.Context, sess models.Session, id int) (models.Post, error) {
	m.lastSess, m.lastID = sess, id
	return m.post, m.editErr
}
func (m *mockBlog) Create(ctx context.Context, sess models.Session, title, body string) (models.Post, error) {
	m.calls++
	m.lastSess, m.lastTitle, m.lastBody = sess, title, body
	return m.created, m.createErr
}
func (m *mockBlog) Update(ctx context.Context, sess models.Session, id int, title, body string) error {
	m.calls++
	m.lastSess, m.lastID, m.lastTitle, m.lastBody = sess, id, title, body
	return m.updateErr
}
func (m *mockBlog) Delete(ctx context.Context, sess models.Session, id int) error {
	m.calls++
	m.lastSess, m.lastID = sess, id
	return m.deleteErr
}

// ---- Shared Test Helpers ----

var (
	alice = models.Session{UserID: 1, Username: "alice"}
	bob   = models.Session{UserID: 2, Username: "bob"}
)

func newTestCodec(t *testing.T) *session.Codec {
	t.Helper()
	codec, err := session.NewCodec(session.Options{Secret: "test-secret", TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return codec
}

func newTestRouter(t *testing.T, s *service.Service) (*gin.Engine, *session.Codec) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	codec := newTestCodec(t)
	h := NewHandler(s, codec, nil, 0)
	return h.InitRoutes(), codec
}

// sessionCookie encodes sess the way the router expects to read it back.
func sessionCookie(t *testing.T, codec *session.Codec, sess models.Session) *http.Cookie {
	t.Helper()
	c, err := codec.Cookie(sess)
	if err != nil {
		t.Fatalf("cookie: %v", err)
	}
	return c
}

// do runs one request; a non-nil form is sent url-encoded, a non-nil cookie is attached.
func do(r http.Handler, method, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// responseSession decodes the session cookie set on w. ok is false when none was set.
func responseSession(t *testing.T, codec *session.Codec, w *httptest.ResponseRecorder) (sess models.Session, deleted, ok bool) {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name != codec.CookieName() {
			continue
		}
		if c.MaxAge < 0 {
			return models.Session{}, true, true
		}
		s, err := codec.Decode(c.Value)
		if err != nil {
			t.Fatalf("decode response cookie: %v", err)
		}
		return s, false, true
	}
	return models.Session{}, false, false
}
