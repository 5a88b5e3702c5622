package handlers

import (
	"net/http"
	"time"

	"blogapp/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionKey      = "session"
	requestIDKey    = "requestId"
	requestIDHeader = "X-Request-ID"
)

// requestLogger tags each request with an id and logs it once served.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	reqID := c.GetHeader(requestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	c.Set(requestIDKey, reqID)
	c.Header(requestIDHeader, reqID)

	c.Next()

	if h.log != nil {
		h.log.Infow("http_request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", reqID,
		)
	}
}

// sessionMiddleware decodes the session cookie and stores it in the gin context.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	sess := h.sessions.Load(c.Request)
	c.Set(sessionKey, &sess)
	c.Next()
}

// currentSession never returns nil; routes outside sessionMiddleware get a throwaway anonymous session.
func currentSession(c *gin.Context) *models.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*models.Session); ok {
			return sess
		}
	}
	sess := &models.Session{}
	c.Set(sessionKey, sess)
	return sess
}

// commitSession writes the session cookie. Anonymous visitors without a cookie get none.
func (h *Handler) commitSession(c *gin.Context) {
	sess := currentSession(c)
	if !sess.IsAuthenticated() && len(sess.Flashes) == 0 {
		if _, err := c.Request.Cookie(h.sessions.CookieName()); err != nil {
			return
		}
	}
	cookie, err := h.sessions.Cookie(*sess)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("session_encode_failed", "err", err)
		}
		return
	}
	http.SetCookie(c.Writer, cookie)
}

// redirect commits the session and answers with 302.
func (h *Handler) redirect(c *gin.Context, location string) {
	h.commitSession(c)
	c.Redirect(http.StatusFound, location)
}

// render fills the shared layout fields, consumes the flashes and writes the page.
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	sess := currentSession(c)
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = sess.TakeFlashes()
	if sess.IsAuthenticated() {
		data["user"] = sess
	}
	h.commitSession(c)
	c.HTML(status, name, data)
}

func (h *Handler) renderError(c *gin.Context, status int) {
	h.render(c, status, "error.html", gin.H{
		"status":  status,
		"message": http.StatusText(status),
	})
}
