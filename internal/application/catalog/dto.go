package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/edusite/backend/internal/domain/catalog"
	"github.com/edusite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaveProductInput is a submitted product form, kept as the text the user typed.
// An empty ID means create; any other value names the product to update.
type SaveProductInput struct {
	ID            string
	Name          string
	Brand         string
	Price         string
	OriginalPrice string
	ImageURL      string
}

// IsUpdate reports whether the form targets an existing product.
// Any submitted id, even blank, selects the update path and must parse.
func (in SaveProductInput) IsUpdate() bool {
	return in.ID != ""
}

// Fields parses and validates the editable fields of the form
func (in SaveProductInput) Fields() (catalog.ProductFields, error) {
	price, err := catalog.ParsePrice("price", in.Price)
	if err != nil {
		return catalog.ProductFields{}, err
	}
	originalPrice, err := catalog.ParsePrice("originalPrice", in.OriginalPrice)
	if err != nil {
		return catalog.ProductFields{}, err
	}
	return catalog.NewProductFields(in.Name, in.Brand, price, originalPrice, in.ImageURL)
}

// ParseProductID parses a product ID sent as form text
func ParseProductID(text string) (int64, error) {
	if text == "" {
		return 0, shared.NewValidationError("id is required")
	}
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || id <= 0 {
		return 0, shared.NewParseError("id must be a positive integer")
	}
	return id, nil
}

// ProductResponse represents a product in API responses.
// Prices are encoded as decimal strings to keep their exact value.
type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Brand         string          `json:"brand"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	ImageURL      string          `json:"imageUrl"`
	Discounted    bool            `json:"discounted"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// SaveResult reports which branch a save took
type SaveResult struct {
	Product ProductResponse
	Created bool
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Brand:         p.Brand,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		ImageURL:      p.ImageURL,
		Discounted:    p.IsDiscounted(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain Products to ProductResponses
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
