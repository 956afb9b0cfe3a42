package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kailas-cloud/reviewdex/internal/db"
	"github.com/kailas-cloud/reviewdex/internal/domain"
	domprod "github.com/kailas-cloud/reviewdex/internal/domain/product"
)

// store is the consumer interface for products (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
}

// Repo implements usecase/product.Repository on JSON documents.
type Repo struct {
	store  store
	prefix string
	newID  func() string
}

// New creates a product repository. An empty prefix uses domain.KeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.KeyPrefix
	}
	return &Repo{store: s, prefix: prefix, newID: uuid.NewString}
}

// EnsureIndex creates the product search index unless it already exists.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def := buildIndex(r.prefix)
	exists, err := r.store.IndexExists(ctx, def.Name)
	if err != nil {
		return fmt.Errorf("check product index: %w", err)
	}
	if exists {
		return nil
	}
	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create product index: %w", err)
	}
	return nil
}

// Create stores p under a freshly generated id and returns it with that id.
func (r *Repo) Create(ctx context.Context, p domprod.Product) (domprod.Product, error) {
	stored := p.WithID(r.newID())
	data, err := marshalProduct(stored)
	if err != nil {
		return domprod.Product{}, err
	}
	if err := r.store.JSONSet(ctx, productKey(r.prefix, stored.ID()), "$", data); err != nil {
		return domprod.Product{}, fmt.Errorf("json.set product: %w", err)
	}
	return stored, nil
}

// Get loads a product by id. Malformed ids are reported as not found.
func (r *Repo) Get(ctx context.Context, id string) (domprod.Product, error) {
	if uuid.Validate(id) != nil {
		return domprod.Product{}, domain.ErrProductNotFound
	}
	data, err := r.store.JSONGet(ctx, productKey(r.prefix, id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domprod.Product{}, domain.ErrProductNotFound
		}
		return domprod.Product{}, fmt.Errorf("json.get product %s: %w", id, err)
	}
	return unmarshalProduct(data)
}

// Exists reports whether a product with id is stored.
func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	if uuid.Validate(id) != nil {
		return false, nil
	}
	ok, err := r.store.Exists(ctx, productKey(r.prefix, id))
	if err != nil {
		return false, fmt.Errorf("exists product %s: %w", id, err)
	}
	return ok, nil
}

// List returns one page of products ordered by name, plus the total count.
func (r *Repo) List(ctx context.Context, offset, limit int) ([]domprod.Product, int, error) {
	res, err := r.store.SearchList(ctx, &db.ListQuery{
		Index:   indexName(r.prefix),
		Offset:  offset,
		Limit:   limit,
		SortBy:  "name",
		SortAsc: true,
		Fields:  []string{"$"},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	out := make([]domprod.Product, 0, len(res.Entries))
	for _, e := range res.Entries {
		p, err := unmarshalProduct([]byte(e.Fields["$"]))
		if err != nil {
			return nil, 0, fmt.Errorf("decode %s: %w", e.Key, err)
		}
		out = append(out, p)
	}
	return out, res.Total, nil
}
