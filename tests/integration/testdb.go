// Package integration runs the admin site against real PostgreSQL and Redis
// containers started with testcontainers.
package integration

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/edusite/backend/internal/infrastructure/config"
	"github.com/edusite/backend/internal/infrastructure/migration"
	"github.com/edusite/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

var (
	// Shared container for all tests in the package
	sharedContainer   *tcpostgres.PostgresContainer
	sharedContainerMu sync.Mutex
	sharedDBConfig    config.DatabaseConfig
)

// TestDB is a migrated PostgreSQL database
type TestDB struct {
	*persistence.Database
	Config config.DatabaseConfig
	t      *testing.T
}

// NewSharedTestDB connects to the package's PostgreSQL container, starting
// and migrating it on first use. The products table is truncated before
// returning.
func NewSharedTestDB(t *testing.T) *TestDB {
	t.Helper()

	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	ctx := context.Background()

	if sharedContainer == nil {
		container, err := tcpostgres.Run(ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("edusite_test"),
			tcpostgres.WithUsername("postgres"),
			tcpostgres.WithPassword("admin123"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		require.NoError(t, err, "Failed to start PostgreSQL container")

		host, err := container.Host(ctx)
		require.NoError(t, err)
		port, err := container.MappedPort(ctx, "5432/tcp")
		require.NoError(t, err)

		sharedContainer = container
		sharedDBConfig = config.DatabaseConfig{
			Driver:          config.DriverPostgres,
			Host:            host,
			Port:            port.Int(),
			User:            "postgres",
			Password:        "admin123",
			DBName:          "edusite_test",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5,
			ConnMaxIdleTime: 1,
		}

		db := connect(t, sharedDBConfig)
		runMigrations(t, db)
		require.NoError(t, db.Close())
	}

	testDB := &TestDB{
		Database: connect(t, sharedDBConfig),
		Config:   sharedDBConfig,
		t:        t,
	}
	t.Cleanup(func() {
		_ = testDB.Close()
	})

	testDB.CleanTables()
	return testDB
}

// CleanTables empties the products table and restarts its id sequence
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()
	err := tdb.DB.Exec("TRUNCATE TABLE products RESTART IDENTITY").Error
	require.NoError(tdb.t, err, "Failed to truncate products")
}

func connect(t *testing.T, cfg config.DatabaseConfig) *persistence.Database {
	t.Helper()

	gormLogger := logger.Default.LogMode(logger.Silent)
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := persistence.NewDatabaseWithLogger(&cfg, gormLogger)
	require.NoError(t, err, "Failed to connect to database")
	return db
}

// runMigrations applies the SQL migrations the way cmd/migrate does
func runMigrations(t *testing.T, db *persistence.Database) {
	t.Helper()

	migrationsPath := findMigrationsPath()
	require.NotEmpty(t, migrationsPath, "Could not find migrations directory")

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)

	m, err := migration.New(sqlDB, migrationsPath, zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, m.Up(), "Failed to run migrations")

	version, dirty, err := m.Version()
	require.NoError(t, err)
	require.False(t, dirty, "migration %d left the schema dirty", version)
}

// findMigrationsPath walks up from this file to the repository's migrations directory
func findMigrationsPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}

	dir := filepath.Dir(filename)
	for i := 0; i < 5; i++ {
		migrationsPath := filepath.Join(dir, "migrations")
		if _, err := os.Stat(migrationsPath); err == nil {
			return migrationsPath
		}
		dir = filepath.Dir(dir)
	}
	return ""
}

// CleanupSharedContainer terminates the shared container.
// Called from TestMain.
func CleanupSharedContainer() {
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = sharedContainer.Terminate(ctx)
		sharedContainer = nil
	}
}
