package db

// TagFilter restricts a listing to documents whose TAG field equals Value.
type TagFilter struct {
	Field string
	Value string
}

// ListQuery is the input for a paginated FT.SEARCH listing.
type ListQuery struct {
	Index   string
	Filters []TagFilter // ANDed; empty matches every document
	Offset  int
	Limit   int
	SortBy  string
	SortAsc bool
	Fields  []string // RETURN fields; empty returns the whole document
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
