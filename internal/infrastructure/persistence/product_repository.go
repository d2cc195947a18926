package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edusite/backend/internal/domain/catalog"
	"github.com/edusite/backend/internal/domain/shared"
	"github.com/edusite/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindAll returns every product ordered by ID ascending
func (r *GormProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, nil
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product %d: %w", id, err)
	}
	return model.ToDomain(), nil
}

// Create inserts a new product; the database assigns its ID
func (r *GormProductRepository) Create(ctx context.Context, fields catalog.ProductFields) (*catalog.Product, error) {
	model := &models.ProductModel{}
	model.ApplyFields(fields)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return model.ToDomain(), nil
}

// Update overwrites every editable field of an existing product.
// Concurrent writers are not detected; the last update wins.
func (r *GormProductRepository) Update(ctx context.Context, id int64, fields catalog.ProductFields) (*catalog.Product, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", id).
		Updates(models.UpdateColumns(fields, time.Now()))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes a product by ID
func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of stored products
func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// Ensure GormProductRepository implements the interface
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
