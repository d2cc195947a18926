package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	catalogapp "github.com/edusite/backend/internal/application/catalog"
	"github.com/edusite/backend/internal/interfaces/http/dto"
	"github.com/edusite/backend/internal/interfaces/http/middleware"
	"github.com/edusite/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(site *testutil.Site, path, accept string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return site.Do(req)
}

func TestSite_SessionGuard(t *testing.T) {
	site := testutil.NewSite(t, testutil.SiteOptions{})

	t.Run("browser without a session is sent to login", func(t *testing.T) {
		w := get(site, "/admin", "text/html")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
	})

	t.Run("JSON client without a session gets 401", func(t *testing.T) {
		w := get(site, "/admin", "application/json")

		testutil.AssertErrorResponse(t, w, http.StatusUnauthorized, dto.ErrCodeUnauthorized)
	})

	t.Run("writes are guarded too", func(t *testing.T) {
		w := site.Do(testutil.FormRequest(http.MethodPost, "/admin", url.Values{"name": {"x"}}))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		count, err := site.Products.Count(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("signed-in admin sees the page", func(t *testing.T) {
		cookie := site.SignIn(t)

		w := get(site, "/admin", "text/html", cookie)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Manage Products")
		assert.Contains(t, w.Body.String(), `action="/logout"`)
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		cookie := site.SignIn(t)

		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.AddCookie(cookie)
		w := site.Do(req)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))

		// the old cookie no longer opens the admin page
		w = get(site, "/admin", "text/html", cookie)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
	})
}

func TestSite_AuthDisabled(t *testing.T) {
	cfg := testutil.NewConfig()
	cfg.Auth.Enabled = false
	site := testutil.NewSite(t, testutil.SiteOptions{Config: cfg})

	w := get(site, "/admin", "text/html")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `action="/logout"`)

	w = get(site, "/login", "text/html")
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestSite_AdminWorkflow(t *testing.T) {
	site := testutil.NewSite(t, testutil.SiteOptions{})
	cookie := site.SignIn(t)

	form := url.Values{
		"name":          {"Campus Hoodie"},
		"brand":         {"EduWear"},
		"price":         {"39.90"},
		"originalPrice": {"49.90"},
		"imageUrl":      {"https://cdn.example.com/hoodie.png"},
	}
	req := testutil.FormRequest(http.MethodPost, "/admin", form)
	req.AddCookie(cookie)
	w := site.Do(req)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = get(site, "/admin", "application/json", cookie)
	products := testutil.DecodeData[[]catalogapp.ProductResponse](t, w)
	require.Len(t, products, 1)
	assert.Equal(t, "Campus Hoodie", products[0].Name)

	req = testutil.FormRequest(http.MethodDelete, "/admin", url.Values{"id": {itoa(products[0].ID)}})
	req.AddCookie(cookie)
	w = site.Do(req)
	require.Equal(t, http.StatusSeeOther, w.Code)

	count, err := site.Products.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSite_GlobalMiddleware(t *testing.T) {
	site := testutil.NewSite(t, testutil.SiteOptions{})

	t.Run("request id and security headers", func(t *testing.T) {
		w := get(site, "/health", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Contains(t, w.Header().Get("Content-Security-Policy"), "form-action 'self'")
		assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("client request id is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/system/ping", nil)
		req.Header.Set(middleware.RequestIDHeader, "trace-me")
		w := site.Do(req)

		assert.Equal(t, "trace-me", w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("oversized bodies are rejected", func(t *testing.T) {
		body := strings.Repeat("a", int(site.Config.HTTP.MaxBodySize)+1)
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := site.Do(req)

		testutil.AssertErrorResponse(t, w, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge)
	})

	t.Run("root redirects to admin", func(t *testing.T) {
		w := get(site, "/", "")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/admin", w.Header().Get("Location"))
	})

	t.Run("health reports the product count", func(t *testing.T) {
		w := get(site, "/health", "")

		health := testutil.DecodeData[dto.HealthResponse](t, w)
		assert.Equal(t, "ok", health.Status)
		assert.Equal(t, int64(0), health.Products)
	})

	t.Run("swagger is not mounted when disabled", func(t *testing.T) {
		w := get(site, "/swagger/index.html", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSite_Swagger(t *testing.T) {
	t.Run("requires a session", func(t *testing.T) {
		cfg := testutil.NewConfig()
		cfg.Swagger.Enabled = true
		site := testutil.NewSite(t, testutil.SiteOptions{Config: cfg})

		w := get(site, "/swagger/index.html", "text/html")
		assert.Equal(t, http.StatusSeeOther, w.Code)

		w = get(site, "/swagger/index.html", "text/html", site.SignIn(t))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ip allow list", func(t *testing.T) {
		cfg := testutil.NewConfig()
		cfg.Swagger.Enabled = true
		cfg.Swagger.AllowedIPs = []string{"10.0.0.0/8"}
		site := testutil.NewSite(t, testutil.SiteOptions{Config: cfg})

		w := get(site, "/swagger/index.html", "text/html", site.SignIn(t))

		testutil.AssertErrorResponse(t, w, http.StatusForbidden, dto.ErrCodeForbidden)
	})
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
