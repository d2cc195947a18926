package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/edusite/backend/internal/application/identity"
	"github.com/edusite/backend/internal/infrastructure/config"
	"github.com/edusite/backend/internal/infrastructure/logger"
	"github.com/edusite/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionKey is the gin context key holding the resolved *identity.Session
const SessionKey = "session"

// LoginPath is where unauthenticated browser requests are sent
const LoginPath = "/login"

// SessionResolver resolves the session behind a token
type SessionResolver interface {
	Lookup(ctx context.Context, token string) (*identity.Session, error)
}

// SessionCookie reads and writes the session cookie
type SessionCookie struct {
	Name     string
	Domain   string
	Path     string
	Secure   bool
	SameSite http.SameSite
}

// NewSessionCookie builds a SessionCookie from the cookie config section
func NewSessionCookie(cfg config.CookieConfig) SessionCookie {
	path := cfg.Path
	if path == "" {
		path = "/"
	}
	return SessionCookie{
		Name:     cfg.Name,
		Domain:   cfg.Domain,
		Path:     path,
		Secure:   cfg.Secure,
		SameSite: parseSameSite(cfg.SameSite),
	}
}

func parseSameSite(value string) http.SameSite {
	switch strings.ToLower(value) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// Token returns the session token carried by the request, or "" when absent
func (s SessionCookie) Token(c *gin.Context) string {
	token, err := c.Cookie(s.Name)
	if err != nil {
		return ""
	}
	return token
}

// Set stores the session token in an HttpOnly cookie that expires with the session
func (s SessionCookie) Set(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	s.write(c, token, maxAge)
}

// Clear removes the session cookie from the client
func (s SessionCookie) Clear(c *gin.Context) {
	s.write(c, "", -1)
}

func (s SessionCookie) write(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(s.SameSite)
	c.SetCookie(s.Name, value, maxAge, s.Path, s.Domain, s.Secure, true)
}

// SessionConfig configures RequireSession
type SessionConfig struct {
	// Enabled switches the guard off for local development
	Enabled  bool
	Sessions SessionResolver
	Cookie   SessionCookie
	Logger   *zap.Logger
}

// RequireSession rejects requests without a valid admin session.
// Browser requests are redirected to the login page; JSON clients get 401.
// The session is resolved on every request and stored in the gin context.
func RequireSession(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		session, err := cfg.Sessions.Lookup(c.Request.Context(), cfg.Cookie.Token(c))
		if err != nil {
			if !errors.Is(err, identity.ErrNoSession) {
				logger.LOr(c.Request.Context(), cfg.Logger).Error("Session lookup failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
					dto.ErrCodeInternal, "An unexpected error occurred", GetRequestID(c)))
				return
			}
			rejectSession(c)
			return
		}

		c.Set(SessionKey, session)
		ctx, _ := logger.WithAdmin(c.Request.Context(), logger.FromContextOr(c.Request.Context(), cfg.Logger), session.Username)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func rejectSession(c *gin.Context) {
	if WantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeUnauthorized, identity.ErrNoSession.Message, GetRequestID(c)))
		return
	}
	c.Redirect(http.StatusSeeOther, LoginPath)
	c.Abort()
}

// GetSession returns the session resolved by RequireSession, or nil
func GetSession(c *gin.Context) *identity.Session {
	if v, exists := c.Get(SessionKey); exists {
		if session, ok := v.(*identity.Session); ok {
			return session
		}
	}
	return nil
}
