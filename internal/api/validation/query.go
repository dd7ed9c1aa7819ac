package validation

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/videra/data-server/internal/api/schema"
	"github.com/videra/data-server/internal/pagination"
)

var (
	errQueryParameterMissing = func(name string) *schema.Error {
		return &schema.Error{
			Type:    "validation.query.parameter.missing",
			Message: fmt.Sprintf("The query parameter '%s' is required but was not present in the request.", name),
			Details: map[string]interface{}{
				"parameter": name,
			},
		}
	}
	errQueryParameterInvalidType = func(name, value, expectedType string) *schema.Error {
		return &schema.Error{
			Type:    "validation.query.parameter.invalidType",
			Message: fmt.Sprintf("The query parameter '%s' ('%s') could not be assigned to the required type (%s).", name, value, expectedType),
			Details: map[string]interface{}{
				"parameter":     name,
				"value":         value,
				"expected_type": expectedType,
			},
		}
	}
	errQueryParameterNumberOutOfRange = func(name string, value, min, max int64) *schema.Error {
		comparison := ""
		if value < min {
			comparison = fmt.Sprintf("%d [given] < %d [min]", value, min)
		} else if value > max {
			comparison = fmt.Sprintf("%d [given] > %d [max]", value, max)
		}

		return &schema.Error{
			Type:    "validation.query.parameter.number.outOfRange",
			Message: fmt.Sprintf("The query parameter '%s' is out of the required range (%s).", name, comparison),
			Details: map[string]interface{}{
				"parameter": name,
				"value":     value,
				"min":       min,
				"max":       max,
			},
		}
	}
	errQueryParameterNotAllowed = func(name, value string, allowed []string) *schema.Error {
		return &schema.Error{
			Type:    "validation.query.parameter.notAllowed",
			Message: fmt.Sprintf("The query parameter '%s' ('%s') must be one of: %s.", name, value, strings.Join(allowed, ", ")),
			Details: map[string]interface{}{
				"parameter": name,
				"value":     value,
				"allowed":   allowed,
			},
		}
	}
	errQueryParameterInvalidValue = func(name, value string, err error) *schema.Error {
		return &schema.Error{
			Type:    "validation.query.parameter.invalidValue",
			Message: fmt.Sprintf("The query parameter '%s' ('%s') is invalid: %s.", name, value, err.Error()),
			Details: map[string]interface{}{
				"parameter": name,
				"value":     value,
			},
		}
	}
)

// QueryNumber extracts and validates an integer value out of the query parameters of the given request
func QueryNumber(request *http.Request, key string, required bool, def, min, max int64) (int64, *schema.Error) {
	// Extract the raw string value
	value := strings.TrimSpace(request.URL.Query().Get(key))
	if value == "" {
		if required {
			return 0, errQueryParameterMissing(key)
		}
		return def, nil
	}

	// Try to parse the value
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errQueryParameterInvalidType(key, value, "number")
	}

	// Check if the parsed value is in the required range
	if parsed < min || parsed > max {
		return 0, errQueryParameterNumberOutOfRange(key, parsed, min, max)
	}

	return parsed, nil
}

// QueryEnum extracts a string value out of the query parameters of the given request and makes sure it is one of
// the allowed values
func QueryEnum(request *http.Request, key, def string, allowed []string) (string, *schema.Error) {
	value := strings.TrimSpace(request.URL.Query().Get(key))
	if value == "" {
		return def, nil
	}
	for _, candidate := range allowed {
		if value == candidate {
			return value, nil
		}
	}
	return "", errQueryParameterNotAllowed(key, value, allowed)
}

// FilterCheck validates the raw value of a single domain filter
type FilterCheck func(value string) error

// QueryPagination extracts and validates the pagination query descriptor of a list request.
// Filters are read for every filter key the schema knows; the sentinel 'all' and empty values are never checked.
// maxLimit caps the limit additionally to the maximum of the defaults if it is positive.
func QueryPagination[T any](request *http.Request, defaults pagination.Defaults, listSchema pagination.Schema[T], maxLimit int, checks map[string]FilterCheck) (pagination.Query, []*schema.Error) {
	var validationErrs []*schema.Error

	if defaults.MaxLimit <= 0 || (maxLimit > 0 && maxLimit < defaults.MaxLimit) {
		defaults.MaxLimit = maxLimit
	}
	limitMax := int64(math.MaxInt32)
	if defaults.MaxLimit > 0 {
		limitMax = int64(defaults.MaxLimit)
	}

	page, validationErr := QueryNumber(request, "page", false, int64(max(defaults.Page, 1)), 1, math.MaxInt32)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	limit, validationErr := QueryNumber(request, "limit", false, int64(defaults.Limit), 1, limitMax)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	sortBy, validationErr := QueryEnum(request, "sortBy", defaults.SortBy, listSchema.SortKeys())
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	var sortOrder pagination.SortOrder
	if raw := strings.TrimSpace(request.URL.Query().Get("sortOrder")); raw != "" {
		parsed, err := pagination.ParseSortOrder(raw)
		if err != nil {
			validationErrs = append(validationErrs, errQueryParameterNotAllowed("sortOrder", raw, []string{
				string(pagination.SortOrderAscending),
				string(pagination.SortOrderDescending),
			}))
		}
		sortOrder = parsed
	}

	filters := make(map[string]string)
	for _, key := range listSchema.FilterKeys() {
		value := strings.TrimSpace(request.URL.Query().Get(key))
		if value == "" || strings.EqualFold(value, pagination.FilterAll) {
			continue
		}
		if check, ok := checks[key]; ok {
			if err := check(value); err != nil {
				validationErrs = append(validationErrs, errQueryParameterInvalidValue(key, value, err))
				continue
			}
		}
		filters[key] = value
	}

	if len(validationErrs) > 0 {
		return pagination.Query{}, validationErrs
	}

	pageVal := int(page)
	limitVal := int(limit)
	search := request.URL.Query().Get("search")
	intent := pagination.Intent{
		Page:    &pageVal,
		Limit:   &limitVal,
		SortBy:  &sortBy,
		Search:  &search,
		Filters: filters,
	}
	if sortOrder != "" {
		intent.SortOrder = &sortOrder
	}
	return pagination.Build(intent, defaults), nil
}
