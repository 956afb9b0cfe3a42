package product

import (
	"context"

	domprod "github.com/kailas-cloud/reviewdex/internal/domain/product"
)

// Repository defines the storage contract for products.
type Repository interface {
	Create(ctx context.Context, p domprod.Product) (domprod.Product, error)
	Get(ctx context.Context, id string) (domprod.Product, error)
	List(ctx context.Context, offset, limit int) ([]domprod.Product, int, error)
}
