package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/edusite/backend/internal/application/identity"
	"github.com/edusite/backend/internal/infrastructure/config"
	"github.com/edusite/backend/internal/infrastructure/logger"
	"github.com/edusite/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockSessionResolver struct {
	mock.Mock
}

func (m *MockSessionResolver) Lookup(ctx context.Context, token string) (*identity.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Session), args.Error(1)
}

func testCookie() SessionCookie {
	return NewSessionCookie(config.CookieConfig{Name: "edusite_session", SameSite: "lax"})
}

func guardedRouter(cfg SessionConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/admin", RequireSession(cfg), func(c *gin.Context) {
		session := GetSession(c)
		username := ""
		if session != nil {
			username = session.Username
		}
		c.String(http.StatusOK, username+"|"+logger.GetAdmin(c.Request.Context()))
	})
	return router
}

func TestRequireSession(t *testing.T) {
	t.Run("valid session passes and is stored in context", func(t *testing.T) {
		resolver := new(MockSessionResolver)
		resolver.On("Lookup", mock.Anything, "good-token").
			Return(&identity.Session{ID: "s1", Username: "admin"}, nil)

		router := guardedRouter(SessionConfig{Enabled: true, Sessions: resolver, Cookie: testCookie(), Logger: zap.NewNop()})

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: "edusite_session", Value: "good-token"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "admin|admin", w.Body.String())
	})

	t.Run("browser without session is redirected to login", func(t *testing.T) {
		resolver := new(MockSessionResolver)
		resolver.On("Lookup", mock.Anything, "").Return(nil, identity.ErrNoSession)

		router := guardedRouter(SessionConfig{Enabled: true, Sessions: resolver, Cookie: testCookie()})

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Accept", "text/html")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, LoginPath, w.Header().Get("Location"))
	})

	t.Run("json client without session gets 401", func(t *testing.T) {
		resolver := new(MockSessionResolver)
		resolver.On("Lookup", mock.Anything, "revoked").Return(nil, identity.ErrNoSession)

		router := guardedRouter(SessionConfig{Enabled: true, Sessions: resolver, Cookie: testCookie()})

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Accept", "application/json")
		req.AddCookie(&http.Cookie{Name: "edusite_session", Value: "revoked"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error.Code)
	})

	t.Run("lookup failure is an internal error", func(t *testing.T) {
		resolver := new(MockSessionResolver)
		resolver.On("Lookup", mock.Anything, "t").Return(nil, errors.New("redis down"))

		router := guardedRouter(SessionConfig{Enabled: true, Sessions: resolver, Cookie: testCookie(), Logger: zap.NewNop()})

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: "edusite_session", Value: "t"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeInternal)
	})

	t.Run("disabled guard lets everything through", func(t *testing.T) {
		resolver := new(MockSessionResolver)
		router := guardedRouter(SessionConfig{Enabled: false, Sessions: resolver, Cookie: testCookie()})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		resolver.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	})
}

func TestSessionCookie(t *testing.T) {
	cookie := NewSessionCookie(config.CookieConfig{
		Name:     "edusite_session",
		Domain:   "edusite.example",
		Secure:   true,
		SameSite: "strict",
	})
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)

	t.Run("set writes an HttpOnly cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)

		cookie.Set(c, "token-value", time.Now().Add(time.Hour))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "edusite_session", cookies[0].Name)
		assert.Equal(t, "token-value", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
		assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
		assert.InDelta(t, 3600, cookies[0].MaxAge, 5)
	})

	t.Run("clear expires the cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/logout", nil)

		cookie.Clear(c)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Empty(t, cookies[0].Value)
		assert.Less(t, cookies[0].MaxAge, 0)
	})

	t.Run("token reads the request cookie", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/admin", nil)
		assert.Empty(t, cookie.Token(c))

		c.Request.AddCookie(&http.Cookie{Name: "edusite_session", Value: "abc"})
		assert.Equal(t, "abc", cookie.Token(c))
	})
}

func TestParseSameSite(t *testing.T) {
	assert.Equal(t, http.SameSiteLaxMode, parseSameSite("lax"))
	assert.Equal(t, http.SameSiteLaxMode, parseSameSite(""))
	assert.Equal(t, http.SameSiteStrictMode, parseSameSite("Strict"))
	assert.Equal(t, http.SameSiteNoneMode, parseSameSite("none"))
}
