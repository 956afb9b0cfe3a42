package reviewdex

import (
	"context"
	"fmt"
	"time"

	domprod "github.com/kailas-cloud/reviewdex/internal/domain/product"
)

// ProductService manages the product catalogue.
type ProductService struct {
	svc productUseCase
	obs *observer
}

// Create validates and stores a new product with a generated ID.
func (s *ProductService) Create(ctx context.Context, p NewProduct) (_ Product, err error) {
	start := time.Now()
	defer func() { s.obs.observe("product.create", start, err) }()

	created, err := s.svc.Create(ctx, p.Name, p.Price, p.Description, p.Stock)
	if err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	return fromInternalProduct(created), nil
}

// Get retrieves a product by ID. A missing product returns ErrProductNotFound.
func (s *ProductService) Get(ctx context.Context, id string) (_ Product, err error) {
	start := time.Now()
	defer func() { s.obs.observe("product.get", start, err) }()

	p, err := s.svc.Get(ctx, id)
	if err != nil {
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return fromInternalProduct(p), nil
}

// List returns one page of products. limit <= 0 uses the default page size.
func (s *ProductService) List(ctx context.Context, offset, limit int) (_ Page[Product], err error) {
	start := time.Now()
	defer func() { s.obs.observe("product.list", start, err) }()

	list, total, err := s.svc.List(ctx, offset, limit)
	if err != nil {
		return Page[Product]{}, fmt.Errorf("list products: %w", err)
	}
	items := make([]Product, len(list))
	for i, p := range list {
		items[i] = fromInternalProduct(p)
	}
	return Page[Product]{Items: items, Total: total, Offset: max(offset, 0)}, nil
}

func fromInternalProduct(p domprod.Product) Product {
	return Product{
		ID:          p.ID(),
		Name:        p.Name(),
		Price:       p.Price(),
		Description: p.Description(),
		Stock:       p.Stock(),
	}
}
