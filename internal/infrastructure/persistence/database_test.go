package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/edusite/backend/internal/domain/catalog"
	"github.com/edusite/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(path string) *config.DatabaseConfig {
	return &config.DatabaseConfig{
		Driver:          config.DriverSQLite,
		Path:            path,
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: 60,
		ConnMaxIdleTime: 30,
	}
}

func TestNewDatabase_SQLiteMemory(t *testing.T) {
	db, err := NewDatabase(sqliteConfig(":memory:"))
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, config.DriverSQLite, db.Driver)
	require.NoError(t, db.AutoMigrate())
	assert.NoError(t, db.Ping(context.Background()))

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)

	// The schema must survive across queries on the pinned connection.
	repo := NewGormProductRepository(db.DB)
	_, err = repo.Create(context.Background(), catalog.ProductFields{
		Name:          "Lab Coat",
		Brand:         "Campus Co",
		Price:         decimal.NewFromInt(25),
		OriginalPrice: decimal.NewFromInt(30),
		ImageURL:      "https://cdn.example.com/coat.png",
	})
	require.NoError(t, err)
	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNewDatabase_SQLiteFile(t *testing.T) {
	db, err := NewDatabase(sqliteConfig(filepath.Join(t.TempDir(), "edusite.db")))
	require.NoError(t, err)

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 4, stats.MaxOpenConnections)

	require.NoError(t, db.Close())
	assert.Error(t, db.Ping(context.Background()))
}

func TestNewDatabase_UnsupportedDriver(t *testing.T) {
	_, err := NewDatabase(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
