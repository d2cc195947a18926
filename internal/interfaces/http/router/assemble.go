package router

import (
	"fmt"

	catalogapp "github.com/edusite/backend/internal/application/catalog"
	appidentity "github.com/edusite/backend/internal/application/identity"
	"github.com/edusite/backend/internal/infrastructure/config"
	"github.com/edusite/backend/internal/interfaces/http/handler"
	"github.com/edusite/backend/internal/interfaces/http/middleware"
	"github.com/edusite/backend/internal/interfaces/web/view"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is reported by /system/info
const Version = "1.0.0"

// Services are the application services a site is assembled from
type Services struct {
	Products *catalogapp.ProductService
	// Sessions is nil when authentication is disabled
	Sessions *appidentity.SessionService
	DB       handler.Pinger
}

// Assemble builds the handlers for the given services and returns the ready engine.
func Assemble(cfg *config.Config, logger *zap.Logger, services Services) (*gin.Engine, error) {
	middleware.SetupValidator()

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	cookie := middleware.NewSessionCookie(cfg.Cookie)
	site := Site{
		Config:   cfg,
		Logger:   logger,
		Renderer: renderer,
		Cookie:   cookie,
		Admin:    handler.NewAdminHandler(services.Products, logger),
		Auth:     handler.NewAuthHandler(services.Sessions, cookie, logger),
		System:   handler.NewSystemHandler(cfg.App.Name, Version, services.DB, services.Products, logger),
	}
	if services.Sessions != nil {
		site.Sessions = services.Sessions
	}

	return NewEngine(site)
}
