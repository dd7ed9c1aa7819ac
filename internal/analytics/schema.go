package analytics

import "github.com/videra/data-server/internal/pagination"

// Filter names understood by the analytics list
const (
	FilterPlatform  = "platform"
	FilterStartDate = "startDate"
	FilterEndDate   = "endDate"
	FilterContentID = "contentId"
)

// Defaults are the query defaults of the analytics list
var Defaults = pagination.Defaults{
	Page:      1,
	Limit:     50,
	MaxLimit:  500,
	SortBy:    "date",
	SortOrder: pagination.SortOrderDescending,
}

// Schema describes how data points are searched, filtered and sorted.
// Dates share a fixed-width layout, so comparing them as strings orders them chronologically.
var Schema = pagination.Schema[*DataPoint]{
	SearchFields: []func(*DataPoint) string{
		func(obj *DataPoint) string { return obj.Platform },
	},
	Filters: map[string]pagination.Matcher[*DataPoint]{
		FilterPlatform: pagination.Equals(func(obj *DataPoint) string { return obj.Platform }),
		FilterStartDate: func(obj *DataPoint, value string) bool {
			return obj.Date >= value
		},
		FilterEndDate: func(obj *DataPoint, value string) bool {
			return obj.Date <= value
		},
		FilterContentID: pagination.Equals(func(obj *DataPoint) string { return obj.ContentID }),
	},
	Sorts: map[string]pagination.Comparator[*DataPoint]{
		"date":       pagination.Ordered(func(obj *DataPoint) string { return obj.Date }),
		"views":      pagination.Ordered(func(obj *DataPoint) int64 { return obj.Views }),
		"engagement": pagination.Ordered(func(obj *DataPoint) int64 { return obj.Engagement }),
	},
}
