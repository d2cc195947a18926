package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/edusite/backend/internal/application/catalog"
	identityapp "github.com/edusite/backend/internal/application/identity"
	"github.com/edusite/backend/internal/domain/identity"
	"github.com/edusite/backend/internal/infrastructure/auth"
	"github.com/edusite/backend/internal/infrastructure/config"
	"github.com/edusite/backend/internal/infrastructure/logger"
	"github.com/edusite/backend/internal/infrastructure/persistence"
	"github.com/edusite/backend/internal/infrastructure/telemetry"
	"github.com/edusite/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/edusite/backend/docs"
)

//	@title			EduSite Admin API
//	@version		1.0
//	@description	Product catalog administration for the EduSite storefront.

//	@host		localhost:8080
//	@BasePath	/

//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						edusite_session
//	@description				Admin session cookie set by POST /login

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync(log)

	log.Info("Starting EduSite backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database_driver", cfg.Database.Driver),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.ConfigFrom(cfg.Telemetry, router.Version), log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Database.Driver == config.DriverSQLite {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to create sqlite schema", zap.Error(err))
		}
	}

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfigFrom(cfg.Telemetry, cfg.Database.Driver), log)
	if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	products := catalogapp.NewProductService(persistence.NewGormProductRepository(db.DB), log)

	var sessions *identityapp.SessionService
	if cfg.Auth.Enabled {
		blacklist, closeBlacklist := newTokenBlacklist(ctx, cfg.Redis, log)
		defer closeBlacklist()

		admin, err := identity.NewAdminAccount(cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash)
		if err != nil {
			log.Fatal("Invalid admin account configuration", zap.Error(err))
		}
		sessions = identityapp.NewSessionService(admin, auth.NewSessionTokenService(cfg.Auth), blacklist, log)
	} else {
		log.Warn("Admin authentication is disabled; the admin panel is open to anyone who can reach it")
	}

	if !cfg.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine, err := router.Assemble(cfg, log, router.Services{
		Products: products,
		Sessions: sessions,
		DB:       db,
	})
	if err != nil {
		log.Fatal("Failed to assemble HTTP router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// newTokenBlacklist picks Redis when configured and falls back to memory
func newTokenBlacklist(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (auth.TokenBlacklist, func()) {
	if !cfg.Enabled {
		log.Info("Revoked sessions tracked in memory")
		return auth.NewInMemoryTokenBlacklist(), func() {}
	}

	blacklist, err := auth.NewRedisTokenBlacklist(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err), zap.String("addr", cfg.Addr()))
	}
	log.Info("Revoked sessions tracked in Redis", zap.String("addr", cfg.Addr()))

	return blacklist, func() {
		if err := blacklist.Close(); err != nil {
			log.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}
