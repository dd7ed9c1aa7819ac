package content

import (
	"time"

	"github.com/videra/data-server/internal/pagination"
)

// Filter names understood by the content list
const (
	FilterPlatform    = "platform"
	FilterStatus      = "status"
	FilterPerformance = "performance"
)

// Defaults are the query defaults of the content list
var Defaults = pagination.Defaults{
	Page:      1,
	Limit:     20,
	MaxLimit:  100,
	SortBy:    "publishedAt",
	SortOrder: pagination.SortOrderDescending,
}

// Schema describes how content items are searched, filtered and sorted
var Schema = pagination.Schema[*Item]{
	SearchFields: []func(*Item) string{
		func(obj *Item) string { return obj.Title },
		func(obj *Item) string { return obj.Platform },
	},
	Filters: map[string]pagination.Matcher[*Item]{
		FilterPlatform:    pagination.Equals(func(obj *Item) string { return obj.Platform }),
		FilterStatus:      pagination.Equals(func(obj *Item) string { return string(obj.Status) }),
		FilterPerformance: pagination.Equals(func(obj *Item) string { return string(obj.Performance) }),
	},
	Sorts: map[string]pagination.Comparator[*Item]{
		"publishedAt":    pagination.Chronological(func(obj *Item) time.Time { return obj.PublishedAt }),
		"views":          pagination.Ordered(func(obj *Item) int64 { return obj.Views }),
		"likes":          pagination.Ordered(func(obj *Item) int64 { return obj.Likes }),
		"shares":         pagination.Ordered(func(obj *Item) int64 { return obj.Shares }),
		"comments":       pagination.Ordered(func(obj *Item) int64 { return obj.Comments }),
		"engagementRate": pagination.Ordered(func(obj *Item) float64 { return obj.EngagementRate }),
		"title":          pagination.FoldedString(func(obj *Item) string { return obj.Title }),
	},
}
