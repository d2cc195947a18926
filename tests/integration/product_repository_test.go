package integration

import (
	"os"
	"testing"
	"time"

	"github.com/edusite/backend/internal/domain/catalog"
	"github.com/edusite/backend/internal/domain/shared"
	"github.com/edusite/backend/internal/infrastructure/persistence"
	"github.com/edusite/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	code := m.Run()
	CleanupSharedContainer()
	os.Exit(code)
}

func hoodie(t *testing.T) catalog.ProductFields {
	t.Helper()
	fields, err := catalog.NewProductFields(
		"Campus Hoodie", "EduWear",
		decimal.RequireFromString("39.90"), decimal.RequireFromString("49.90"),
		"https://cdn.example.com/hoodie.png",
	)
	require.NoError(t, err)
	return fields
}

// TestProductRepository_Integration runs the product repository against PostgreSQL
func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewSharedTestDB(t)
	repo := persistence.NewGormProductRepository(testDB.DB)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)

	t.Run("Create assigns increasing ids", func(t *testing.T) {
		testDB.CleanTables()

		first, err := repo.Create(ctx, hoodie(t))
		require.NoError(t, err)
		second, err := repo.Create(ctx, hoodie(t))
		require.NoError(t, err)

		assert.Equal(t, int64(1), first.ID)
		assert.Greater(t, second.ID, first.ID)
		assert.False(t, first.CreatedAt.IsZero())
	})

	t.Run("FindByID keeps decimal prices", func(t *testing.T) {
		testDB.CleanTables()

		created, err := repo.Create(ctx, hoodie(t))
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Campus Hoodie", found.Name)
		assert.Equal(t, "EduWear", found.Brand)
		assert.True(t, found.Price.Equal(decimal.RequireFromString("39.9")), "price %s", found.Price)
		assert.True(t, found.OriginalPrice.Equal(decimal.RequireFromString("49.9")))
		assert.Equal(t, "https://cdn.example.com/hoodie.png", found.ImageURL)
	})

	t.Run("FindByID of a missing product", func(t *testing.T) {
		testDB.CleanTables()

		_, err := repo.FindByID(ctx, 404)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindAll orders by id", func(t *testing.T) {
		testDB.CleanTables()

		for i := 0; i < 3; i++ {
			_, err := repo.Create(ctx, hoodie(t))
			require.NoError(t, err)
		}

		products, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 3)
		for i := 1; i < len(products); i++ {
			assert.Less(t, products[i-1].ID, products[i].ID)
		}
	})

	t.Run("Update overwrites every field", func(t *testing.T) {
		testDB.CleanTables()

		created, err := repo.Create(ctx, hoodie(t))
		require.NoError(t, err)

		changed, err := catalog.NewProductFields(
			"Lab Notebook", "Paperworks",
			decimal.RequireFromString("4.50"), decimal.RequireFromString("5"),
			"https://cdn.example.com/notebook.png",
		)
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.ID, changed)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Lab Notebook", updated.Name)
		assert.Equal(t, "Paperworks", updated.Brand)
		assert.True(t, updated.Price.Equal(decimal.RequireFromString("4.5")))
		assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Update of a missing product", func(t *testing.T) {
		testDB.CleanTables()

		_, err := repo.Update(ctx, 99, hoodie(t))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("Delete removes the row", func(t *testing.T) {
		testDB.CleanTables()

		created, err := repo.Create(ctx, hoodie(t))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, created.ID))
		assert.ErrorIs(t, repo.Delete(ctx, created.ID), shared.ErrNotFound)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("negative price rejected by the schema", func(t *testing.T) {
		testDB.CleanTables()

		fields := hoodie(t)
		fields.Price = decimal.NewFromInt(-1)

		_, err := repo.Create(ctx, fields)
		assert.Error(t, err)
	})
}
