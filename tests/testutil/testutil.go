// Package testutil provides common test utilities for the admin site.
// It builds in-memory databases, configurations and fully wired sites
// so handler, client and integration tests share one setup.
package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/edusite/backend/internal/infrastructure/config"
	"github.com/edusite/backend/internal/infrastructure/persistence"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Admin credentials accepted by every site built with NewConfig
const (
	AdminUsername = "admin"
	AdminPassword = "correct horse battery"
)

// MockDB wraps a GORM database with sqlmock for testing.
type MockDB struct {
	DB    *gorm.DB
	Mock  sqlmock.Sqlmock
	SqlDB *sql.DB
}

// NewMockDB creates a new mock database for testing.
// The connection is closed when the test ends.
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err, "Failed to open GORM connection")

	return &MockDB{DB: gormDB, Mock: mock, SqlDB: mockDB}
}

// ExpectationsWereMet verifies that all expectations were met.
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	require.NoError(t, m.Mock.ExpectationsWereMet(), "Unmet database expectations")
}

// NewSQLiteDatabase opens a migrated in-memory sqlite database closed at test end.
func NewSQLiteDatabase(t *testing.T) *persistence.Database {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   ":memory:",
	})
	require.NoError(t, err, "Failed to open sqlite database")
	require.NoError(t, db.AutoMigrate(), "Failed to migrate sqlite database")
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// NewConfig returns a development configuration for tests.
// Authentication is on; the admin password hash is filled in by NewSite.
func NewConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "edusite-test", Env: "development", Port: "0"},
		Database: config.DatabaseConfig{
			Driver: config.DriverSQLite,
			Path:   ":memory:",
		},
		Auth: config.AuthConfig{
			Enabled:       true,
			AdminUsername: AdminUsername,
			Secret:        "test-secret-key-that-is-at-least-32-chars",
			SessionTTL:    time.Hour,
			Issuer:        "edusite-test",
		},
		Cookie: config.CookieConfig{
			Name:     "edusite_session",
			Path:     "/",
			SameSite: "lax",
		},
		Log: config.LogConfig{Level: "error", Format: "console", Output: "stderr"},
		HTTP: config.HTTPConfig{
			ReadTimeout:      5 * time.Second,
			WriteTimeout:     5 * time.Second,
			IdleTimeout:      5 * time.Second,
			MaxBodySize:      1 << 20,
			CORSAllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			CORSAllowHeaders: []string{"Content-Type", "Accept", "X-Request-ID"},
		},
		Swagger: config.SwaggerConfig{Enabled: false},
		Telemetry: config.TelemetryConfig{
			Enabled:     false,
			ServiceName: "edusite-test",
		},
	}
}

// ContextWithTimeout creates a context with timeout that is cancelled when the test ends.
func ContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
