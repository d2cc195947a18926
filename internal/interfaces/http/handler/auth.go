package handler

import (
	"net/http"
	"time"

	"github.com/edusite/backend/internal/application/identity"
	"github.com/edusite/backend/internal/interfaces/http/middleware"
	"github.com/edusite/backend/internal/interfaces/web/view"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler signs the admin in and out.
// A nil session service means authentication is disabled.
type AuthHandler struct {
	BaseHandler
	sessions *identity.SessionService
	cookie   middleware.SessionCookie
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *identity.SessionService, cookie middleware.SessionCookie, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{logger: logger},
		sessions:    sessions,
		cookie:      cookie,
	}
}

// LoginPage godoc
// @ID           getLoginPage
// @Summary      Sign-in page
// @Tags         auth
// @Produce      html
// @Success      200
// @Success      303
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if h.sessions == nil {
		c.Redirect(http.StatusSeeOther, AdminPath)
		return
	}
	c.HTML(http.StatusOK, view.LoginTemplate, view.LoginPage{})
}

// Login godoc
// @ID           login
// @Summary      Sign in
// @Description  Verifies the admin credentials, sets the session cookie and redirects to the admin page. JSON clients get the session instead.
// @Tags         auth
// @Accept       x-www-form-urlencoded,json
// @Produce      json,html
// @Param        username formData string true "Admin username"
// @Param        password formData string true "Admin password"
// @Success      200 {object} APIResponse[SessionResponse]
// @Success      303
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	if h.sessions == nil {
		c.Redirect(http.StatusSeeOther, AdminPath)
		return
	}

	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		if middleware.WantsJSON(c) {
			h.ValidationError(c, middleware.ValidationDetails(err))
			return
		}
		c.HTML(http.StatusBadRequest, view.LoginTemplate, view.LoginPage{
			Username: form.Username,
			Error:    "Enter your username and password",
		})
		return
	}

	session, err := h.sessions.Login(c.Request.Context(), identity.LoginInput{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		if middleware.WantsJSON(c) {
			h.HandleError(c, err)
			return
		}
		_, status, message := h.classify(c, err)
		c.HTML(status, view.LoginTemplate, view.LoginPage{Username: form.Username, Error: message})
		return
	}

	h.cookie.Set(c, session.Token, session.ExpiresAt)
	if middleware.WantsJSON(c) {
		h.Success(c, SessionResponse{
			Username:  session.Username,
			ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
		})
		return
	}
	c.Redirect(http.StatusSeeOther, AdminPath)
}

// Logout godoc
// @ID           logout
// @Summary      Sign out
// @Description  Revokes the current session, clears the cookie and redirects to the sign-in page. Succeeds without a session.
// @Tags         auth
// @Success      303
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := h.cookie.Token(c); token != "" && h.sessions != nil {
		if err := h.sessions.Logout(c.Request.Context(), token); err != nil {
			h.log(c).Warn("Failed to revoke session", zap.Error(err))
		}
	}

	h.cookie.Clear(c)
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}
