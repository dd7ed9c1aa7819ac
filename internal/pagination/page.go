package pagination

// Page represents a single page of a collection together with its pagination metadata
type Page[T any] struct {
	Items      []T
	Pagination Metadata
	Meta       Meta
}

// Metadata describes the position of a Page inside the filtered collection
type Metadata struct {
	CurrentPage     int  `json:"currentPage" yaml:"currentPage"`
	TotalPages      int  `json:"totalPages" yaml:"totalPages"`
	TotalItems      int  `json:"totalItems" yaml:"totalItems"`
	ItemsPerPage    int  `json:"itemsPerPage" yaml:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage" yaml:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage" yaml:"hasPreviousPage"`
}

// Meta echoes the effective sorting and search parameters a Page was built with
type Meta struct {
	SortBy    string `json:"sortBy,omitempty" yaml:"sortBy,omitempty"`
	SortOrder string `json:"sortOrder,omitempty" yaml:"sortOrder,omitempty"`
	Search    string `json:"search,omitempty" yaml:"search,omitempty"`
}

// NewMetadata computes the pagination metadata for a query over a filtered collection of totalItems elements.
// An empty collection still reports a single (empty) page.
func NewMetadata(query Query, totalItems int) Metadata {
	limit := query.Limit
	if limit < 1 {
		limit = 1
	}
	page := query.Page
	if page < 1 {
		page = 1
	}
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := (totalItems + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	return Metadata{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalItems:      totalItems,
		ItemsPerPage:    limit,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// NewMeta builds the meta section of a Page out of the query it answers
func NewMeta(query Query) Meta {
	return Meta{
		SortBy:    query.SortBy,
		SortOrder: string(query.SortOrder),
		Search:    query.Search,
	}
}

// NewPage assembles a Page out of already sliced items and the total amount of filtered items
func NewPage[T any](query Query, items []T, totalItems int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:      items,
		Pagination: NewMetadata(query, totalItems),
		Meta:       NewMeta(query),
	}
}
