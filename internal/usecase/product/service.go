package product

import (
	"context"
	"fmt"

	domprod "github.com/kailas-cloud/reviewdex/internal/domain/product"
)

// Page bounds used when the caller does not set a limit.
const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// Service handles product operations.
type Service struct {
	repo            Repository
	defaultPageSize int
	maxPageSize     int
}

// New creates a product service. Non-positive page sizes fall back to the defaults.
func New(repo Repository, defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	if maxPageSize <= 0 {
		maxPageSize = MaxPageSize
	}
	return &Service{repo: repo, defaultPageSize: min(defaultPageSize, maxPageSize), maxPageSize: maxPageSize}
}

// Create validates and stores a new product.
func (s *Service) Create(ctx context.Context, name string, price float64, description string, stock int) (domprod.Product, error) {
	p, err := domprod.New(name, price, description, stock)
	if err != nil {
		return domprod.Product{}, fmt.Errorf("validate product: %w", err)
	}

	stored, err := s.repo.Create(ctx, p)
	if err != nil {
		return domprod.Product{}, fmt.Errorf("create product: %w", err)
	}
	return stored, nil
}

// Get retrieves a product by id.
func (s *Service) Get(ctx context.Context, id string) (domprod.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domprod.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List returns one page of products and the total count.
func (s *Service) List(ctx context.Context, offset, limit int) ([]domprod.Product, int, error) {
	offset, limit = s.clampPage(offset, limit)
	list, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return list, total, nil
}

func (s *Service) clampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	return offset, min(limit, s.maxPageSize)
}
