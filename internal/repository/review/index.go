package review

import "github.com/kailas-cloud/reviewdex/internal/db"

func keyPrefix(prefix string) string { return prefix + "review:" }

func reviewKey(prefix, id string) string { return keyPrefix(prefix) + id }

func indexName(prefix string) string { return prefix + "review:idx" }

// buildIndex defines the review index: filter by product and label, sort by time.
func buildIndex(prefix string) *db.IndexDefinition {
	return db.NewIndex(indexName(prefix)).
		OnJSON().
		Prefix(keyPrefix(prefix)).
		Tag("$.product_id").As("product_id").
		Tag("$.sentiment").As("sentiment").
		Numeric("$.created_at").As("created_at").Sortable().
		MustBuild()
}
