package product

import (
	"fmt"

	json "github.com/goccy/go-json"

	domprod "github.com/kailas-cloud/reviewdex/internal/domain/product"
)

// productDoc is the stored JSON representation of a product.
type productDoc struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
}

func marshalProduct(p domprod.Product) ([]byte, error) {
	data, err := json.Marshal(productDoc{
		ID:          p.ID(),
		Name:        p.Name(),
		Price:       p.Price(),
		Description: p.Description(),
		Stock:       p.Stock(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal product: %w", err)
	}
	return data, nil
}

// unmarshalProduct accepts both a bare document and the single-element
// array JSON.GET returns for "$" paths.
func unmarshalProduct(data []byte) (domprod.Product, error) {
	var doc productDoc
	if len(data) > 0 && data[0] == '[' {
		var docs []productDoc
		if err := json.Unmarshal(data, &docs); err != nil {
			return domprod.Product{}, fmt.Errorf("unmarshal product: %w", err)
		}
		if len(docs) == 0 {
			return domprod.Product{}, fmt.Errorf("unmarshal product: empty result")
		}
		doc = docs[0]
	} else if err := json.Unmarshal(data, &doc); err != nil {
		return domprod.Product{}, fmt.Errorf("unmarshal product: %w", err)
	}
	return domprod.Reconstruct(doc.ID, doc.Name, doc.Price, doc.Description, doc.Stock), nil
}
