package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"blogapp/internal/models"
	"blogapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, nil, 3*time.Second)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"configured_when_missing", "/ws", 3 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=2m", 3 * time.Second},
		{"interval_too_small", "/ws?interval=1ms", 3 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=120000", 3 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 3 * time.Second},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", 3 * time.Second},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

func TestNewHandler_DefaultFeedInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, nil, 0)
	if h.feedInterval != defaultInterval {
		t.Fatalf("feedInterval=%v", h.feedInterval)
	}
}

// --- websocket integration tests ---

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func dialFeed(t *testing.T, blog service.Blog, query string) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(&service.Service{Blog: blog}, nil, nil, 0)
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = query

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestWebSocket_PostsStream_InitialAndPeriodic(t *testing.T) {
	blog := &mockBlog{posts: samplePosts()}
	conn := dialFeed(t, blog, "interval_ms=150")

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "posts" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var posts []models.Post
	if err := json.Unmarshal(env.Data, &posts); err != nil {
		t.Fatalf("unmarshal posts: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != 2 || posts[1].AuthorUsername != "alice" {
		t.Fatalf("unexpected posts: %+v", posts)
	}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read second: %v", err)
	}
	if env.Type != "posts" {
		t.Fatalf("expected type=posts, got %+v", env)
	}
}

func TestWebSocket_ListError_SendsErrorAndCloses(t *testing.T) {
	blog := &mockBlog{listErr: &service.StorageError{Op: "list posts", Err: errors.New("boom")}}
	conn := dialFeed(t, blog, "")

	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read error envelope: %v", err)
	}
	if env.Type != "error" || env.Error == "" {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	// the server closes right after reporting the failure
	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected read error (closed), got message: %s", string(raw))
	}
}
