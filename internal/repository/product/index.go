package product

import "github.com/kailas-cloud/reviewdex/internal/db"

func keyPrefix(prefix string) string { return prefix + "product:" }

func productKey(prefix, id string) string { return keyPrefix(prefix) + id }

func indexName(prefix string) string { return prefix + "product:idx" }

// buildIndex defines the product listing index over JSON documents.
func buildIndex(prefix string) *db.IndexDefinition {
	return db.NewIndex(indexName(prefix)).
		OnJSON().
		Prefix(keyPrefix(prefix)).
		Text("$.name").As("name").Sortable().
		Numeric("$.price").As("price").
		Numeric("$.stock").As("stock").
		MustBuild()
}
