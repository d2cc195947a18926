package models

import (
	"testing"
	"time"

	"github.com/edusite/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProductModel_RoundTrip(t *testing.T) {
	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	p := &catalog.Product{
		ID:            12,
		Name:          "Campus Hoodie",
		Brand:         "EduWear",
		Price:         decimal.RequireFromString("39.90"),
		OriginalPrice: decimal.RequireFromString("49.90"),
		ImageURL:      "https://cdn.example.com/hoodie.png",
		CreatedAt:     created,
		UpdatedAt:     created,
	}

	m := &ProductModel{ID: p.ID, CreatedAt: created, UpdatedAt: created}
	m.ApplyFields(catalog.ProductFields{
		Name:          p.Name,
		Brand:         p.Brand,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		ImageURL:      p.ImageURL,
	})
	assert.Equal(t, "products", m.TableName())
	assert.Equal(t, p, m.ToDomain())
}

func TestUpdateColumns(t *testing.T) {
	now := time.Now()
	cols := UpdateColumns(catalog.ProductFields{
		Name:  "Notebook",
		Brand: "Paperly",
		Price: decimal.Zero,
	}, now)

	assert.Len(t, cols, 6)
	assert.Equal(t, decimal.Zero, cols["price"])
	assert.Equal(t, now, cols["updated_at"])
}
