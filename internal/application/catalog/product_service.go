package catalog

import (
	"context"

	"github.com/edusite/backend/internal/domain/catalog"
	"github.com/edusite/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ProductService handles the admin operations on the product catalog
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// List returns every product in the catalog
func (s *ProductService) List(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Get returns a single product
func (s *ProductService) Get(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Save creates or updates a product from a submitted form.
// A non-empty ID selects update; otherwise a new product is created.
// Every field is parsed and validated before the store is touched.
func (s *ProductService) Save(ctx context.Context, input SaveProductInput) (*SaveResult, error) {
	var id int64
	if input.IsUpdate() {
		parsed, err := ParseProductID(input.ID)
		if err != nil {
			return nil, err
		}
		id = parsed
	}

	fields, err := input.Fields()
	if err != nil {
		return nil, err
	}

	if id == 0 {
		product, err := s.productRepo.Create(ctx, fields)
		if err != nil {
			return nil, err
		}
		s.log(ctx).Info("Product created", zap.Int64("product_id", product.ID))
		return &SaveResult{Product: ToProductResponse(product), Created: true}, nil
	}

	product, err := s.productRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.log(ctx).Info("Product updated", zap.Int64("product_id", product.ID))
	return &SaveResult{Product: ToProductResponse(product)}, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log(ctx).Info("Product deleted", zap.Int64("product_id", id))
	return nil
}

// Count returns the number of products in the catalog
func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.productRepo.Count(ctx)
}

func (s *ProductService) log(ctx context.Context) *zap.Logger {
	return logger.LOr(ctx, s.logger)
}
