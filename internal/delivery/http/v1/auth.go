package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BlockyAit/personal-list-site/internal/services"
)

type loginForm struct {
	Email    string `form:"email" binding:"required,email,max=255"`
	Password string `form:"password" binding:"required,min=6,max=255"`
}

type registerForm struct {
	Name     string `form:"name" binding:"required,max=255"`
	Email    string `form:"email" binding:"required,email,max=255"`
	Password string `form:"password" binding:"required,min=6,max=255"`
}

func (h *handlerImpl) HandleLoginPage(c *gin.Context) {
	session := sessionFromContext(c)
	c.HTML(http.StatusOK, "login.html", gin.H{
		"CSRFToken": session.CSRFToken,
	})
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	session := sessionFromContext(c)

	var form loginForm
	err := c.ShouldBind(&form)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind login form")
		c.HTML(http.StatusOK, "login.html", gin.H{
			"CSRFToken": session.CSRFToken,
			"Errors":    formatValidationErrors(err),
		})
		return
	}

	token, err := h.auth.Login(c, services.LoginParams{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) ||
			errors.Is(err, services.ErrUserPasswordMismatch) {
			// Unknown email and wrong password read the same.
			c.HTML(http.StatusOK, "login.html", gin.H{
				"CSRFToken": session.CSRFToken,
				"Errors":    []string{"invalid credentials"},
			})
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to login")
		renderServerError(c)
		return
	}

	err = h.sessions.SetToken(c, session.ID, token)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind token to session")
		renderServerError(c)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *handlerImpl) HandleRegisterPage(c *gin.Context) {
	session := sessionFromContext(c)
	c.HTML(http.StatusOK, "register.html", gin.H{
		"CSRFToken": session.CSRFToken,
	})
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	session := sessionFromContext(c)

	var form registerForm
	err := c.ShouldBind(&form)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind register form")
		c.HTML(http.StatusOK, "register.html", gin.H{
			"CSRFToken": session.CSRFToken,
			"Errors":    formatValidationErrors(err),
		})
		return
	}

	_, err = h.auth.Register(c, services.RegisterParams{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			c.HTML(http.StatusOK, "register.html", gin.H{
				"CSRFToken": session.CSRFToken,
				"Errors":    []string{"registration failed"},
			})
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to register user")
		renderServerError(c)
		return
	}

	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *handlerImpl) HandleLogout(c *gin.Context) {
	session := sessionFromContext(c)
	if session.ID != "" {
		err := h.sessions.Delete(c, session.ID)
		if err != nil {
			h.logger.Error().
				Err(err).
				Str("session_id", session.ID).
				Msg("failed to delete session")
			renderServerError(c)
			return
		}
	}

	clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}
