package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	catalogapp "github.com/edusite/backend/internal/application/catalog"
	appidentity "github.com/edusite/backend/internal/application/identity"
	"github.com/edusite/backend/internal/domain/identity"
	"github.com/edusite/backend/internal/infrastructure/auth"
	"github.com/edusite/backend/internal/infrastructure/config"
	"github.com/edusite/backend/internal/infrastructure/persistence"
	"github.com/edusite/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SiteOptions tunes NewSite
type SiteOptions struct {
	// Config defaults to NewConfig()
	Config *config.Config
	// Database defaults to a fresh in-memory sqlite database
	Database *persistence.Database
	// Blacklist defaults to an in-memory blacklist
	Blacklist auth.TokenBlacklist
}

// Site is a fully wired admin site
type Site struct {
	Config   *config.Config
	Engine   *gin.Engine
	Database *persistence.Database
	Products *catalogapp.ProductService
	Sessions *appidentity.SessionService
}

// NewSite wires the admin site the way the server binary does.
func NewSite(t *testing.T, opts SiteOptions) *Site {
	t.Helper()

	cfg := opts.Config
	if cfg == nil {
		cfg = NewConfig()
	}
	db := opts.Database
	if db == nil {
		db = NewSQLiteDatabase(t)
	}
	blacklist := opts.Blacklist
	if blacklist == nil {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	log := zap.NewNop()
	products := catalogapp.NewProductService(persistence.NewGormProductRepository(db.DB), log)

	var sessions *appidentity.SessionService
	if cfg.Auth.Enabled {
		hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.MinCost)
		require.NoError(t, err)
		admin, err := identity.NewAdminAccount(cfg.Auth.AdminUsername, string(hash))
		require.NoError(t, err)
		sessions = appidentity.NewSessionService(admin, auth.NewSessionTokenService(cfg.Auth), blacklist, log)
	}

	engine, err := router.Assemble(cfg, log, router.Services{
		Products: products,
		Sessions: sessions,
		DB:       db,
	})
	require.NoError(t, err, "Failed to assemble site")

	return &Site{
		Config:   cfg,
		Engine:   engine,
		Database: db,
		Products: products,
		Sessions: sessions,
	}
}

// Serve starts an HTTP server for the site, closed when the test ends.
func (s *Site) Serve(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(s.Engine)
	t.Cleanup(server.Close)
	return server
}

// Do sends a request straight to the engine
func (s *Site) Do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, req)
	return w
}

// SignIn logs the admin in and returns the session cookie
func (s *Site) SignIn(t *testing.T) *http.Cookie {
	t.Helper()

	w := s.Do(FormRequest(http.MethodPost, "/login", url.Values{
		"username": {AdminUsername},
		"password": {AdminPassword},
	}))
	require.Equal(t, http.StatusSeeOther, w.Code, "sign-in failed: %s", w.Body.String())

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == s.Config.Cookie.Name {
			return cookie
		}
	}
	t.Fatalf("sign-in did not set the %s cookie", s.Config.Cookie.Name)
	return nil
}

// FormRequest builds a urlencoded form request
func FormRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
