package router

import (
	"fmt"
	"net/http"

	"github.com/edusite/backend/internal/infrastructure/config"
	"github.com/edusite/backend/internal/infrastructure/logger"
	"github.com/edusite/backend/internal/interfaces/http/handler"
	"github.com/edusite/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Site holds everything the admin site serves requests with.
// Sessions is nil when authentication is disabled.
type Site struct {
	Config   *config.Config
	Logger   *zap.Logger
	Renderer render.HTMLRender
	Sessions middleware.SessionResolver
	Cookie   middleware.SessionCookie

	Admin  *handler.AdminHandler
	Auth   *handler.AuthHandler
	System *handler.SystemHandler
}

// NewEngine builds the gin engine with the global middleware chain and every route.
func NewEngine(site Site) (*gin.Engine, error) {
	cfg := site.Config

	engine := gin.New()
	engine.HTMLRender = site.Renderer
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	engine.Use(
		logger.Recovery(site.Logger),
		middleware.RequestID(),
		logger.GinMiddleware(site.Logger),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		middleware.SpanErrorMarker(),
		middleware.SecureWithConfig(securityConfig(cfg)),
		middleware.CORSWithConfig(middleware.CORSConfigFromHTTP(cfg.HTTP)),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	guard := middleware.RequireSession(middleware.SessionConfig{
		Enabled:  cfg.Auth.Enabled && site.Sessions != nil,
		Sessions: site.Sessions,
		Cookie:   site.Cookie,
		Logger:   site.Logger,
	})

	r := NewRouter(engine)
	r.Register(systemRoutes(site.System))
	r.Register(authRoutes(site.Auth))
	r.Register(adminRoutes(site.Admin, guard))
	if cfg.Swagger.Enabled {
		r.Register(swaggerRoutes(cfg, guard))
	}
	r.Setup()

	engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, handler.AdminPath)
	})

	return engine, nil
}

func securityConfig(cfg *config.Config) middleware.SecurityConfig {
	sec := middleware.DefaultSecurityConfig()
	// HSTS only makes sense once cookies are served over HTTPS
	sec.HSTSEnabled = cfg.Cookie.Secure
	return sec
}

func systemRoutes(h *handler.SystemHandler) *DomainGroup {
	g := NewDomainGroup("system", "")
	g.GET("/health", h.Health)
	g.Group("system-info", "/system").
		GET("/info", h.GetSystemInfo).
		GET("/ping", h.Ping)
	return g
}

func authRoutes(h *handler.AuthHandler) *DomainGroup {
	return NewDomainGroup("auth", "").
		GET("/login", h.LoginPage).
		POST("/login", h.Login).
		POST("/logout", h.Logout)
}

func adminRoutes(h *handler.AdminHandler, guard gin.HandlerFunc) *DomainGroup {
	return NewDomainGroup("admin", handler.AdminPath).
		Use(guard, middleware.TracingAttributeInjector()).
		GET("", h.Load).
		POST("", h.Write).
		DELETE("", h.Delete).
		POST("/delete", h.Delete)
}

func swaggerRoutes(cfg *config.Config, guard gin.HandlerFunc) *DomainGroup {
	protection := middleware.SwaggerProtection(
		middleware.SwaggerConfigFrom(cfg.Swagger, cfg.Auth.Enabled),
		guard,
	)
	return NewDomainGroup("swagger", "/swagger").
		Use(protection).
		GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
