package v1

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BlockyAit/personal-list-site/internal/models"
	"github.com/BlockyAit/personal-list-site/internal/services"
)

const (
	sessionCookie = "session_id"

	sessionCtxKey  = "session"
	identityCtxKey = "identity"

	csrfFormField = "_csrf"
)

// HandleSessionMiddleware makes sure every request runs with a server-side
// session. Anonymous visitors get a fresh one so that the registration and
// login forms can carry an anti-forgery token before any identity exists.
func (h *handlerImpl) HandleSessionMiddleware(c *gin.Context) {
	sessionID, err := c.Cookie(sessionCookie)
	if err == nil && sessionID != "" {
		session, err := h.sessions.Get(c, sessionID)
		if err == nil {
			c.Set(sessionCtxKey, session)
			c.Next()
			return
		}
		if !errors.Is(err, services.ErrSessionNotFound) {
			h.logger.Error().
				Err(err).
				Msg("failed to fetch session")
			renderServerError(c)
			return
		}
	}

	session, err := h.sessions.Create(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create session")
		renderServerError(c)
		return
	}
	setSessionCookie(c, session.ID)

	c.Set(sessionCtxKey, session)
	c.Next()
}

// HandleCSRFMiddleware validates the per-session anti-forgery token on
// every state-mutating request. Forms embed the token via the _csrf field.
func (h *handlerImpl) HandleCSRFMiddleware(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		c.Next()
		return
	}

	session := sessionFromContext(c)
	token := c.PostForm(csrfFormField)
	if token == "" ||
		subtle.ConstantTimeCompare([]byte(token), []byte(session.CSRFToken)) != 1 {
		h.logger.Warn().
			Str("session_id", session.ID).
			Msg("csrf token mismatch")
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	c.Next()
}

// HandleAuthMiddleware recovers the identity held by the current session.
// A missing assertion and an unverifiable one both end in the same
// redirect so that anonymous and tampering clients are indistinguishable.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	session := sessionFromContext(c)
	if !session.Authenticated() {
		redirect(c, "/login")
		return
	}

	identity, err := h.auth.ParseToken(session.Token)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("session_id", session.ID).
			Msg("failed to parse session token")
		redirect(c, "/login")
		return
	}

	c.Set(identityCtxKey, *identity)
	c.Next()
}

// HandleAdminMiddleware runs after HandleAuthMiddleware and restricts the
// route to the admin role. No reason is leaked to the caller.
func (h *handlerImpl) HandleAdminMiddleware(c *gin.Context) {
	identity := identityFromContext(c)
	if !identity.IsAdmin() {
		redirect(c, "/")
		return
	}

	c.Next()
}

func sessionFromContext(c *gin.Context) *models.Session {
	value, exists := c.Get(sessionCtxKey)
	if !exists {
		return &models.Session{}
	}
	session, ok := value.(*models.Session)
	if !ok {
		return &models.Session{}
	}
	return session
}

func identityFromContext(c *gin.Context) models.Identity {
	value, exists := c.Get(identityCtxKey)
	if !exists {
		return models.Identity{}
	}
	identity, _ := value.(models.Identity)
	return identity
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
	c.Abort()
}

func setSessionCookie(c *gin.Context, sessionID string) {
	const secure, httpOnly = false, true
	c.SetCookie(sessionCookie, sessionID, 0,
		"/", "", secure, httpOnly)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1,
		"/", "", false, true)
}
