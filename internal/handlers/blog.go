package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"blogapp/internal/models"
	"blogapp/internal/service"

	"github.com/gin-gonic/gin"
)

type postForm struct {
	Title string `form:"title"`
	Body  string `form:"body"`
}

type pageQuery struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}

// @Summary Index of posts, newest first
// @Tags blog
// @Produce html
// @Param skip query int false "posts to skip"
// @Param limit query int false "max posts (capped at 100)"
// @Success 200
// @Router / [get]
func (h *Handler) index(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.renderError(c, http.StatusBadRequest)
		return
	}
	posts, err := h.services.List(c.Request.Context(), service.Page{Skip: q.Skip, Limit: q.Limit})
	if err != nil {
		h.handleServiceError(c, err, "post_list_failed")
		return
	}
	h.render(c, http.StatusOK, "index.html", gin.H{"posts": posts})
}

// @Summary Single post
// @Tags blog
// @Produce html
// @Param id path int true "post id"
// @Success 200
// @Failure 404
// @Router /{id} [get]
func (h *Handler) showPost(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}
	post, err := h.services.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "post_get_failed")
		return
	}
	h.render(c, http.StatusOK, "post.html", gin.H{"post": post})
}

// @Summary New post form
// @Tags blog
// @Produce html
// @Success 200
// @Success 302 "redirect to /auth/login when anonymous"
// @Router /create [get]
func (h *Handler) createPage(c *gin.Context) {
	if !currentSession(c).IsAuthenticated() {
		h.handleServiceError(c, service.ErrUnauthenticated, "")
		return
	}
	h.render(c, http.StatusOK, "create.html", nil)
}

// @Summary Create a post
// @Tags blog
// @Accept x-www-form-urlencoded
// @Param title formData string true "title"
// @Param body formData string false "body"
// @Success 302 "redirect to /"
// @Failure 422 "blank title"
// @Router /create [post]
func (h *Handler) createPost(c *gin.Context) {
	var input postForm
	if ok := h.bindPostForm(c, &input); !ok {
		return
	}

	sess := currentSession(c)
	post, err := h.services.Create(c.Request.Context(), *sess, input.Title, input.Body)
	if err != nil {
		h.handleFormError(c, err, "post_create_failed", "create.html",
			gin.H{"title": input.Title, "body": input.Body})
		return
	}
	if h.log != nil {
		h.log.Infow("post_created", "post_id", post.ID, "author_id", post.AuthorID)
	}
	h.redirect(c, "/")
}

// @Summary Edit post form
// @Tags blog
// @Produce html
// @Param id path int true "post id"
// @Success 200
// @Failure 403
// @Failure 404
// @Router /{id}/update [get]
func (h *Handler) updatePage(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}
	post, err := h.services.GetForEdit(c.Request.Context(), *currentSession(c), id)
	if err != nil {
		h.handleServiceError(c, err, "post_get_failed")
		return
	}
	h.render(c, http.StatusOK, "update.html", gin.H{"post": post})
}

// @Summary Update a post
// @Tags blog
// @Accept x-www-form-urlencoded
// @Param id path int true "post id"
// @Param title formData string true "title"
// @Param body formData string false "body"
// @Success 302 "redirect to /"
// @Failure 403
// @Failure 404
// @Failure 422 "blank title"
// @Router /{id}/update [post]
func (h *Handler) updatePost(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}
	var input postForm
	if ok := h.bindPostForm(c, &input); !ok {
		return
	}

	err := h.services.Update(c.Request.Context(), *currentSession(c), id, input.Title, input.Body)
	if err != nil {
		h.handleFormError(c, err, "post_update_failed", "update.html", gin.H{
			"post": models.Post{ID: id, Title: input.Title, Body: input.Body},
		})
		return
	}
	h.redirect(c, "/")
}

// @Summary Delete a post
// @Tags blog
// @Param id path int true "post id"
// @Success 302 "redirect to /"
// @Failure 403
// @Failure 404
// @Router /{id}/delete [post]
func (h *Handler) deletePost(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}
	if err := h.services.Delete(c.Request.Context(), *currentSession(c), id); err != nil {
		h.handleServiceError(c, err, "post_delete_failed")
		return
	}
	if h.log != nil {
		h.log.Infow("post_deleted", "post_id", id)
	}
	h.redirect(c, "/")
}

// bindPostForm binds the post form and answers 400 when the body is unreadable.
// Title checks stay with the service so they run after the login and author checks.
func (h *Handler) bindPostForm(c *gin.Context, dst *postForm) bool {
	if err := c.ShouldBind(dst); err != nil {
		if h.log != nil {
			h.log.Infow("post_bad_request_body", "path", c.Request.URL.Path, "err", err)
		}
		h.renderError(c, http.StatusBadRequest)
		return false
	}
	return true
}

// postID parses the :id segment; anything but a positive integer is a 404.
func (h *Handler) postID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.renderError(c, http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// handleFormError re-renders the form on validation failures and defers the rest to handleServiceError.
func (h *Handler) handleFormError(c *gin.Context, err error, event, page string, data gin.H) {
	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		h.handleServiceError(c, err, event)
		return
	}
	currentSession(c).Flash(validationMessage(verr))
	h.render(c, http.StatusUnprocessableEntity, page, data)
}

// handleServiceError maps a service error onto a response. Only unexpected errors are logged.
func (h *Handler) handleServiceError(c *gin.Context, err error, event string) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		h.redirect(c, "/auth/login")
	case errors.Is(err, service.ErrNotFound):
		h.renderError(c, http.StatusNotFound)
	case errors.Is(err, service.ErrForbidden):
		h.renderError(c, http.StatusForbidden)
	case errors.As(err, &verr):
		h.renderError(c, http.StatusUnprocessableEntity)
	default:
		if h.log != nil {
			h.log.Errorw(event, "err", err)
		}
		h.renderError(c, http.StatusInternalServerError)
	}
}

// validationMessage turns {title required} into "Title is required."
func validationMessage(verr *service.ValidationError) string {
	field := verr.Field
	if field != "" {
		field = strings.ToUpper(field[:1]) + field[1:]
	}
	return fmt.Sprintf("%s is %s.", field, verr.Message)
}
