package pagination

import (
	"cmp"
	"sort"
	"strings"
	"time"
)

// Comparator compares two items and returns a negative number, zero or a positive number if a is less than, equal to
// or greater than b
type Comparator[T any] func(a, b T) int

// Matcher decides whether an item passes a domain filter holding the given value
type Matcher[T any] func(item T, value string) bool

// Schema describes how a collection of T can be searched, filtered and sorted
type Schema[T any] struct {
	// SearchFields is the allow-list of string fields a search term is matched against
	SearchFields []func(T) string

	// Filters maps filter names (as used in Query.Filters) to their matchers
	Filters map[string]Matcher[T]

	// Sorts maps sort keys (as used in Query.SortBy) to their comparators
	Sorts map[string]Comparator[T]
}

// CanSortBy returns whether the schema knows the given sort key
func (schema Schema[T]) CanSortBy(key string) bool {
	_, ok := schema.Sorts[key]
	return ok
}

// SortKeys returns all known sort keys in alphabetical order
func (schema Schema[T]) SortKeys() []string {
	keys := make([]string, 0, len(schema.Sorts))
	for key := range schema.Sorts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// FilterKeys returns all known filter names in alphabetical order
func (schema Schema[T]) FilterKeys() []string {
	keys := make([]string, 0, len(schema.Filters))
	for key := range schema.Filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Paginate filters, sorts and slices a collection according to the given query.
// The input slice is never modified.
func Paginate[T any](items []T, query Query, schema Schema[T]) *Page[T] {
	filtered := make([]T, 0, len(items))
	search := strings.ToLower(query.Search)
	for _, item := range items {
		if search != "" && !matchesSearch(item, search, schema.SearchFields) {
			continue
		}
		if !matchesFilters(item, query.Filters, schema.Filters) {
			continue
		}
		filtered = append(filtered, item)
	}

	if comparator, ok := schema.Sorts[query.SortBy]; ok && query.SortBy != "" {
		descending := query.SortOrder == SortOrderDescending
		sort.SliceStable(filtered, func(i, j int) bool {
			if descending {
				return comparator(filtered[i], filtered[j]) > 0
			}
			return comparator(filtered[i], filtered[j]) < 0
		})
	}

	return NewPage(query, slice(filtered, query), len(filtered))
}

func matchesSearch[T any](item T, search string, fields []func(T) string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field(item)), search) {
			return true
		}
	}
	return false
}

func matchesFilters[T any](item T, filters map[string]string, matchers map[string]Matcher[T]) bool {
	for key, val := range filters {
		matcher, ok := matchers[key]
		if !ok {
			continue
		}
		if !matcher(item, val) {
			return false
		}
	}
	return true
}

func slice[T any](items []T, query Query) []T {
	limit := query.Limit
	if limit < 1 {
		limit = 1
	}
	page := query.Page
	if page < 1 {
		page = 1
	}

	start := Query{Page: page, Limit: limit}.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}

	result := make([]T, end-start)
	copy(result, items[start:end])
	return result
}

// Ordered builds a comparator ordering items by a naturally ordered key
func Ordered[T any, K cmp.Ordered](key func(T) K) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

// Chronological builds a comparator ordering items by a timestamp
func Chronological[T any](key func(T) time.Time) Comparator[T] {
	return func(a, b T) int {
		return key(a).Compare(key(b))
	}
}

// FoldedString builds a comparator ordering items by a string key, ignoring case
func FoldedString[T any](key func(T) string) Comparator[T] {
	return func(a, b T) int {
		return strings.Compare(strings.ToLower(key(a)), strings.ToLower(key(b)))
	}
}

// Equals builds a matcher keeping items whose key equals the filter value exactly
func Equals[T any](key func(T) string) Matcher[T] {
	return func(item T, value string) bool {
		return key(item) == value
	}
}

// EqualsFold builds a matcher keeping items whose key equals the filter value, ignoring case
func EqualsFold[T any](key func(T) string) Matcher[T] {
	return func(item T, value string) bool {
		return strings.EqualFold(key(item), value)
	}
}

// Contains builds a matcher keeping items whose list key contains the filter value
func Contains[T any](key func(T) []string) Matcher[T] {
	return func(item T, value string) bool {
		for _, candidate := range key(item) {
			if candidate == value {
				return true
			}
		}
		return false
	}
}
