package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/edusite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Field length limits in characters, mirrored by the products table columns
const (
	MaxNameLength  = 200
	MaxBrandLength = 100
)

// Prices are stored as DECIMAL(18,2)
const (
	PriceScale          = 2
	MaxPriceWholeDigits = 16
)

var maxPrice = decimal.New(1, MaxPriceWholeDigits)

// Product represents a catalog entry shown on the site and managed from the admin panel.
// ID is assigned by the store on creation and never changes afterwards.
type Product struct {
	ID            int64
	Name          string
	Brand         string
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	ImageURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductFields is the editable field set of a product.
// It is used both to create a product and to overwrite an existing one.
type ProductFields struct {
	Name          string
	Brand         string
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	ImageURL      string
}

// NewProductFields validates and builds a ProductFields value
func NewProductFields(name, brand string, price, originalPrice decimal.Decimal, imageURL string) (ProductFields, error) {
	fields := ProductFields{
		Name:          strings.TrimSpace(name),
		Brand:         strings.TrimSpace(brand),
		Price:         price,
		OriginalPrice: originalPrice,
		ImageURL:      strings.TrimSpace(imageURL),
	}
	if err := fields.Validate(); err != nil {
		return ProductFields{}, err
	}
	return fields, nil
}

// Validate checks the required-field and range invariants
func (f ProductFields) Validate() error {
	if err := validateProductName(f.Name); err != nil {
		return err
	}
	if err := validateBrand(f.Brand); err != nil {
		return err
	}
	if err := validatePrice("Price", f.Price); err != nil {
		return err
	}
	if err := validatePrice("Original price", f.OriginalPrice); err != nil {
		return err
	}
	if f.ImageURL == "" {
		return shared.NewValidationError("Image URL cannot be empty")
	}
	return nil
}

// IsDiscounted reports whether the product sells below its original price
func (p *Product) IsDiscounted() bool {
	return p.Price.LessThan(p.OriginalPrice)
}

// ParsePrice parses a price entered as text.
// Non-numeric text is rejected instead of being stored as an invalid number.
func ParsePrice(field, text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero, shared.NewValidationError(field + " is required")
	}
	value, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, shared.NewParseError(field + " must be a number")
	}
	return value, nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewValidationError("Product name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return shared.NewValidationError("Product name cannot exceed 200 characters")
	}
	return nil
}

func validateBrand(brand string) error {
	if brand == "" {
		return shared.NewValidationError("Brand cannot be empty")
	}
	if utf8.RuneCountInString(brand) > MaxBrandLength {
		return shared.NewValidationError("Brand cannot exceed 100 characters")
	}
	return nil
}

func validatePrice(label string, value decimal.Decimal) error {
	if value.IsNegative() {
		return shared.NewRangeError(label + " cannot be negative")
	}
	if !value.Equal(value.Truncate(PriceScale)) {
		return shared.NewParseError(label + " must have at most 2 decimal places")
	}
	if value.GreaterThanOrEqual(maxPrice) {
		return shared.NewRangeError(label + " must be less than 10000000000000000")
	}
	return nil
}
