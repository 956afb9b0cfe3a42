package product

import (
	"math"
	"strings"

	"github.com/kailas-cloud/reviewdex/internal/domain"
)

// MaxNameLength is the maximum product name length in bytes.
const MaxNameLength = 200

// Product is the product aggregate (immutable value object).
type Product struct {
	id          string
	name        string
	price       float64
	description string
	stock       int
}

// New validates and creates a Product without an identifier.
// The identifier is assigned by the store on insert.
func New(name string, price float64, description string, stock int) (Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Product{}, domain.NewValidationError("name", "is required")
	}
	if len(name) > MaxNameLength {
		return Product{}, domain.NewValidationError("name", "too long (max 200)")
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return Product{}, domain.NewValidationError("price", "must be a non-negative number")
	}
	if strings.TrimSpace(description) == "" {
		return Product{}, domain.NewValidationError("description", "is required")
	}
	if stock < 0 {
		return Product{}, domain.NewValidationError("stock", "must be a non-negative integer")
	}
	return Product{name: name, price: price, description: description, stock: stock}, nil
}

// Reconstruct creates a Product without validation (storage hydration).
func Reconstruct(id, name string, price float64, description string, stock int) Product {
	return Product{id: id, name: name, price: price, description: description, stock: stock}
}

// ID returns the store-assigned identifier.
func (p *Product) ID() string { return p.id }

// Name returns the product name.
func (p *Product) Name() string { return p.name }

// Price returns the unit price.
func (p *Product) Price() float64 { return p.price }

// Description returns the product description.
func (p *Product) Description() string { return p.description }

// Stock returns units in stock.
func (p *Product) Stock() int { return p.stock }

// WithID returns a copy carrying the given identifier.
func (p *Product) WithID(id string) Product {
	return Product{id: id, name: p.name, price: p.price, description: p.description, stock: p.stock}
}
