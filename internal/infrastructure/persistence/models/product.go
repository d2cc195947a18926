package models

import (
	"time"

	"github.com/edusite/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Brand         string          `gorm:"type:varchar(100);not null"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	OriginalPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ImageURL      string          `gorm:"column:image_url;type:text;not null"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		ID:            m.ID,
		Name:          m.Name,
		Brand:         m.Brand,
		Price:         m.Price,
		OriginalPrice: m.OriginalPrice,
		ImageURL:      m.ImageURL,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ApplyFields copies the editable fields into the model, leaving ID and timestamps alone.
func (m *ProductModel) ApplyFields(f catalog.ProductFields) {
	m.Name = f.Name
	m.Brand = f.Brand
	m.Price = f.Price
	m.OriginalPrice = f.OriginalPrice
	m.ImageURL = f.ImageURL
}

// UpdateColumns returns the column set written by an update.
// A map is used so zero prices are written instead of skipped.
func UpdateColumns(f catalog.ProductFields, now time.Time) map[string]any {
	return map[string]any{
		"name":           f.Name,
		"brand":          f.Brand,
		"price":          f.Price,
		"original_price": f.OriginalPrice,
		"image_url":      f.ImageURL,
		"updated_at":     now,
	}
}
