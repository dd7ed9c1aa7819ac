package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/videra/data-server/internal/pagination"
)

type row struct {
	Name   string
	Status string
}

var testDefaults = pagination.Defaults{
	Page:      1,
	Limit:     20,
	MaxLimit:  50,
	SortBy:    "name",
	SortOrder: pagination.SortOrderDescending,
}

var testSchema = pagination.Schema[row]{
	Filters: map[string]pagination.Matcher[row]{
		"status": pagination.Equals(func(obj row) string { return obj.Status }),
	},
	Sorts: map[string]pagination.Comparator[row]{
		"name": pagination.FoldedString(func(obj row) string { return obj.Name }),
	},
}

var errUnknownStatus = errors.New("unknown status")

var testChecks = map[string]FilterCheck{
	"status": func(value string) error {
		if value != "active" {
			return errUnknownStatus
		}
		return nil
	},
}

func newRequest(rawQuery string) *http.Request {
	return httptest.NewRequest(http.MethodGet, "/items?"+rawQuery, nil)
}

func TestQueryNumber(t *testing.T) {
	val, err := QueryNumber(newRequest(""), "limit", false, 10, 1, 100)
	assert.Nil(t, err)
	assert.Equal(t, int64(10), val)

	_, err = QueryNumber(newRequest(""), "limit", true, 10, 1, 100)
	require.NotNil(t, err)
	assert.Equal(t, "validation.query.parameter.missing", err.Type)

	_, err = QueryNumber(newRequest("limit=ten"), "limit", false, 10, 1, 100)
	require.NotNil(t, err)
	assert.Equal(t, "validation.query.parameter.invalidType", err.Type)

	_, err = QueryNumber(newRequest("limit=101"), "limit", false, 10, 1, 100)
	require.NotNil(t, err)
	assert.Equal(t, "validation.query.parameter.number.outOfRange", err.Type)
}

func TestQueryPagination(t *testing.T) {
	query, errs := QueryPagination(newRequest("page=2&limit=5&sortBy=name&sortOrder=ASC&search=+foo+&status=active"), testDefaults, testSchema, 0, testChecks)
	require.Empty(t, errs)

	assert.Equal(t, 2, query.Page)
	assert.Equal(t, 5, query.Limit)
	assert.Equal(t, "name", query.SortBy)
	assert.Equal(t, pagination.SortOrderAscending, query.SortOrder)
	assert.Equal(t, "foo", query.Search)
	assert.Equal(t, map[string]string{"status": "active"}, query.Filters)
}

func TestQueryPagination_Defaults(t *testing.T) {
	query, errs := QueryPagination(newRequest("status=all&unknown=1"), testDefaults, testSchema, 0, testChecks)
	require.Empty(t, errs)

	assert.Equal(t, 1, query.Page)
	assert.Equal(t, 20, query.Limit)
	assert.Equal(t, "name", query.SortBy)
	assert.Equal(t, pagination.SortOrderDescending, query.SortOrder)
	assert.Empty(t, query.Filters)
}

func TestQueryPagination_MaxLimit(t *testing.T) {
	query, errs := QueryPagination(newRequest(""), testDefaults, testSchema, 10, nil)
	require.Empty(t, errs)
	assert.Equal(t, 10, query.Limit, "the default limit is clamped to the configured maximum")

	_, errs = QueryPagination(newRequest("limit=11"), testDefaults, testSchema, 10, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, int64(10), errs[0].Details["max"])
}

func TestQueryPagination_Invalid(t *testing.T) {
	_, errs := QueryPagination(newRequest("page=0&limit=abc&sortBy=age&sortOrder=up&status=banned"), testDefaults, testSchema, 0, testChecks)

	types := make([]string, 0, len(errs))
	for _, err := range errs {
		types = append(types, err.Type)
	}
	assert.Equal(t, []string{
		"validation.query.parameter.number.outOfRange",
		"validation.query.parameter.invalidType",
		"validation.query.parameter.notAllowed",
		"validation.query.parameter.notAllowed",
		"validation.query.parameter.invalidValue",
	}, types)
}
