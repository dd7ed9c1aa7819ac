package pagination

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// SortOrder represents the direction a paginated collection is sorted in
type SortOrder string

const (
	SortOrderAscending  SortOrder = "asc"
	SortOrderDescending SortOrder = "desc"
)

// FilterAll is the sentinel filter value meaning "do not filter"
const FilterAll = "all"

// ErrInvalidSortOrder is returned by ParseSortOrder for anything but 'asc' and 'desc'
var ErrInvalidSortOrder = errors.New("sort order must be 'asc' or 'desc'")

// ParseSortOrder parses a raw sort order string (case-insensitive)
func ParseSortOrder(raw string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(raw))) {
	case SortOrderAscending:
		return SortOrderAscending, nil
	case SortOrderDescending:
		return SortOrderDescending, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, raw)
	}
}

// Query represents a normalized page/limit/sort/search/filter request descriptor.
// A Query is treated as a value: derive a new one instead of mutating a shared instance.
type Query struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder SortOrder
	Search    string
	Filters   map[string]string
}

// Offset returns the index of the first item of the requested page.
// Pages too far out to be addressed saturate at math.MaxInt instead of overflowing.
func (query Query) Offset() int {
	if query.Page <= 1 || query.Limit < 1 {
		return 0
	}
	if query.Page-1 > math.MaxInt/query.Limit {
		return math.MaxInt
	}
	return (query.Page - 1) * query.Limit
}

// Filter returns the value of a domain filter and whether it is set
func (query Query) Filter(key string) (string, bool) {
	val, ok := query.Filters[key]
	return val, ok
}

// WithPage returns a copy of the query pointing to another page
func (query Query) WithPage(page int) Query {
	if page < 1 {
		page = 1
	}
	query.Page = page
	query.Filters = copyFilters(query.Filters)
	return query
}

// Key returns a canonical string representation of the query.
// Two queries describing the same request produce the same key, regardless of filter insertion order.
func (query Query) Key() string {
	return query.Values().Encode()
}

// Values encodes the query into the query string parameters understood by the list endpoints
func (query Query) Values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(query.Page))
	values.Set("limit", strconv.Itoa(query.Limit))
	if query.SortBy != "" {
		values.Set("sortBy", query.SortBy)
	}
	if query.SortOrder != "" {
		values.Set("sortOrder", string(query.SortOrder))
	}
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	keys := make([]string, 0, len(query.Filters))
	for key := range query.Filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		values.Set(key, query.Filters[key])
	}
	return values
}

// Intent represents a partial query request; nil fields are filled in by Build
type Intent struct {
	Page      *int
	Limit     *int
	SortBy    *string
	SortOrder *SortOrder
	Search    *string
	Filters   map[string]string
}

// Defaults holds the values Build falls back to for unset or invalid intent fields
type Defaults struct {
	Page      int
	Limit     int
	MaxLimit  int
	SortBy    string
	SortOrder SortOrder
}

// DefaultLimit is used whenever neither the intent nor the defaults carry a usable limit
const DefaultLimit = 20

// Build fills in every unset field of the given intent and normalizes the result.
// Page values below 1 are clamped to 1, non-positive limits fall back to the default limit and limits above
// MaxLimit (if set) are clamped to it. Build never fails.
func Build(intent Intent, defaults Defaults) Query {
	defaults = defaults.normalized()

	query := Query{
		Page:      defaults.Page,
		Limit:     defaults.Limit,
		SortBy:    defaults.SortBy,
		SortOrder: defaults.SortOrder,
	}

	if intent.Page != nil {
		query.Page = *intent.Page
	}
	if query.Page < 1 {
		query.Page = 1
	}

	if intent.Limit != nil && *intent.Limit > 0 {
		query.Limit = *intent.Limit
	}
	if defaults.MaxLimit > 0 && query.Limit > defaults.MaxLimit {
		query.Limit = defaults.MaxLimit
	}

	if intent.SortBy != nil {
		query.SortBy = strings.TrimSpace(*intent.SortBy)
	}
	if intent.SortOrder != nil {
		if order, err := ParseSortOrder(string(*intent.SortOrder)); err == nil {
			query.SortOrder = order
		}
	}

	if intent.Search != nil {
		query.Search = strings.TrimSpace(*intent.Search)
	}

	for key, val := range intent.Filters {
		val = strings.TrimSpace(val)
		if val == "" || strings.EqualFold(val, FilterAll) {
			continue
		}
		if query.Filters == nil {
			query.Filters = make(map[string]string, len(intent.Filters))
		}
		query.Filters[key] = val
	}

	return query
}

func (defaults Defaults) normalized() Defaults {
	if defaults.Page < 1 {
		defaults.Page = 1
	}
	if defaults.Limit < 1 {
		defaults.Limit = DefaultLimit
	}
	if defaults.MaxLimit > 0 && defaults.Limit > defaults.MaxLimit {
		defaults.Limit = defaults.MaxLimit
	}
	if order, err := ParseSortOrder(string(defaults.SortOrder)); err == nil {
		defaults.SortOrder = order
	} else {
		defaults.SortOrder = SortOrderDescending
	}
	return defaults
}

func copyFilters(filters map[string]string) map[string]string {
	if filters == nil {
		return nil
	}
	copied := make(map[string]string, len(filters))
	for key, val := range filters {
		copied[key] = val
	}
	return copied
}
