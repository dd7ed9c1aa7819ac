package user

import (
	"time"

	"github.com/videra/data-server/internal/pagination"
)

// Filter names understood by the user list
const (
	FilterPlan   = "plan"
	FilterStatus = "status"
)

// Defaults are the query defaults of the admin user list
var Defaults = pagination.Defaults{
	Page:      1,
	Limit:     20,
	MaxLimit:  100,
	SortBy:    "createdAt",
	SortOrder: pagination.SortOrderDescending,
}

// Schema describes how users are searched, filtered and sorted.
// Users that never logged in sort before every user that did.
var Schema = pagination.Schema[*User]{
	SearchFields: []func(*User) string{
		func(obj *User) string { return obj.Email },
		func(obj *User) string { return obj.Name },
	},
	Filters: map[string]pagination.Matcher[*User]{
		FilterPlan:   pagination.Equals(func(obj *User) string { return string(obj.Plan) }),
		FilterStatus: pagination.Equals(func(obj *User) string { return string(obj.Status) }),
	},
	Sorts: map[string]pagination.Comparator[*User]{
		"createdAt":  pagination.Chronological(func(obj *User) time.Time { return obj.CreatedAt }),
		"lastLogin":  compareLastLogin,
		"totalPosts": pagination.Ordered(func(obj *User) int { return obj.TotalPosts }),
		"name":       pagination.FoldedString(func(obj *User) string { return obj.Name }),
		"email":      pagination.FoldedString(func(obj *User) string { return obj.Email }),
	},
}

func compareLastLogin(a, b *User) int {
	switch {
	case a.LastLogin == nil && b.LastLogin == nil:
		return 0
	case a.LastLogin == nil:
		return -1
	case b.LastLogin == nil:
		return 1
	default:
		return a.LastLogin.Compare(*b.LastLogin)
	}
}
