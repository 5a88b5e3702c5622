package handlers

import (
	"html/template"
	"net/http"
	"time"

	_ "blogapp/docs"
	"blogapp/internal/logger"
	"blogapp/internal/models"
	"blogapp/internal/service"
	"blogapp/internal/web"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SessionStore moves a Session between requests.
type SessionStore interface {
	CookieName() string
	Load(r *http.Request) models.Session
	Cookie(s models.Session) (*http.Cookie, error)
}

// Handler wires HTTP layer to services, sessions and logging.
type Handler struct {
	services     *service.Service
	sessions     SessionStore
	log          *logger.Logger
	feedInterval time.Duration
}

// NewHandler constructs a new HTTP handler with dependencies.
// A non-positive feedInterval selects the default websocket tick.
func NewHandler(services *service.Service, sessions SessionStore, log *logger.Logger, feedInterval time.Duration) *Handler {
	if feedInterval <= 0 {
		feedInterval = defaultInterval
	}
	return &Handler{services: services, sessions: sessions, log: log, feedInterval: feedInterval}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)
	router.SetHTMLTemplate(template.Must(web.Templates()))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.StaticFS("/static", http.FS(web.Static()))

	router.GET("/health", h.health)
	router.GET("/hello", h.hello)
	router.GET("/ws", h.wsConnect)

	pages := router.Group("/", h.sessionMiddleware)
	h.registerAuthRoutes(pages)
	h.registerBlogRoutes(pages)

	router.NoRoute(h.sessionMiddleware, func(c *gin.Context) {
		h.renderError(c, http.StatusNotFound)
	})

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.GET("/register", h.registerPage)
		auth.POST("/register", h.register)
		auth.GET("/login", h.loginPage)
		auth.POST("/login", h.login)
		auth.GET("/logout", h.logout)
	}
}

func (h *Handler) registerBlogRoutes(r *gin.RouterGroup) {
	r.GET("/", h.index)
	r.GET("/create", h.createPage)
	r.POST("/create", h.createPost)
	r.GET("/:id", h.showPost)
	r.GET("/:id/update", h.updatePage)
	r.POST("/:id/update", h.updatePost)
	r.POST("/:id/delete", h.deletePost)
}

// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Greeting
// @Tags system
// @Produce plain
// @Success 200 {string} string
// @Router /hello [get]
func (h *Handler) hello(c *gin.Context) {
	c.String(http.StatusOK, "Hello, World!")
}
