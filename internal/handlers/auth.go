package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"blogapp/internal/service"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials form for both register and login.
type authCredentials struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

const credentialsRequiredMsg = "Username and password are required."

// bindFormOrUnprocessable binds the form into dst and re-renders page with 422 on failure.
// Returns false if the request was already handled.
func (h *Handler) bindFormOrUnprocessable(c *gin.Context, page string, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		currentSession(c).Flash(credentialsRequiredMsg)
		h.render(c, http.StatusUnprocessableEntity, page, nil)
		return false
	}
	return true
}

// @Summary Registration form
// @Tags auth
// @Produce html
// @Success 200
// @Router /auth/register [get]
func (h *Handler) registerPage(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", nil)
}

// @Summary Register a user
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param username formData string true "username"
// @Param password formData string true "password"
// @Success 302 "redirect to /auth/login, or back to /auth/register with a flash"
// @Failure 422 "missing field"
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input authCredentials
	if ok := h.bindFormOrUnprocessable(c, "register.html", &input); !ok {
		return
	}

	err := h.services.Register(c.Request.Context(), input.Username, input.Password)
	if err == nil {
		h.redirect(c, "/auth/login")
		return
	}

	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrDuplicateUsername):
		if h.log != nil {
			h.log.Infow("auth_register_duplicate", "username", input.Username)
		}
		currentSession(c).Flash(fmt.Sprintf("User %s is already registered.", input.Username))
		h.redirect(c, "/auth/register")
	case errors.As(err, &verr):
		currentSession(c).Flash(validationMessage(verr))
		h.render(c, http.StatusUnprocessableEntity, "register.html", nil)
	default:
		h.handleServiceError(c, err, "auth_register_failed")
	}
}

// @Summary Login form
// @Tags auth
// @Produce html
// @Success 200
// @Router /auth/login [get]
func (h *Handler) loginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", nil)
}

// @Summary Log in
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param username formData string true "username"
// @Param password formData string true "password"
// @Success 302 "redirect to /, or back to /auth/login with a flash"
// @Failure 422 "missing field"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input authCredentials
	if ok := h.bindFormOrUnprocessable(c, "login.html", &input); !ok {
		return
	}

	sess, err := h.services.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		var cerr *service.InvalidCredentialsError
		if !errors.As(err, &cerr) {
			h.handleServiceError(c, err, "auth_login_failed")
			return
		}
		if h.log != nil {
			h.log.Infow("auth_login_failed", "username", input.Username, "reason", cerr.Reason)
		}
		msg := "Incorrect password."
		if cerr.Reason == service.ReasonUnknownUsername {
			msg = "Incorrect username."
		}
		currentSession(c).Flash(msg)
		h.redirect(c, "/auth/login")
		return
	}

	// a fresh login replaces whatever the cookie held
	*currentSession(c) = sess
	h.redirect(c, "/")
}

// @Summary Log out
// @Tags auth
// @Success 302 "redirect to /"
// @Router /auth/logout [get]
func (h *Handler) logout(c *gin.Context) {
	h.services.Logout(currentSession(c))
	h.redirect(c, "/")
}
