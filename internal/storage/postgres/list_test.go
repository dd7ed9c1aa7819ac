package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/videra/data-server/internal/analytics"
	"github.com/videra/data-server/internal/pagination"
)

func TestListPlan_PushesDownTheQuery(t *testing.T) {
	query := pagination.Query{
		Page:      2,
		Limit:     5,
		SortBy:    "views",
		SortOrder: pagination.SortOrderDescending,
		Search:    "50%_off",
		Filters: map[string]string{
			"status":   "published",
			"platform": "TikTok",
		},
	}

	count, page, err := contentList.build(query)
	require.NoError(t, err)

	countSQL, countArgs, err := count.ToSql()
	require.NoError(t, err)
	assert.Contains(t, countSQL, "SELECT COUNT(*) FROM content WHERE")
	assert.Contains(t, countSQL, "title ILIKE $1")
	assert.Contains(t, countSQL, "platform ILIKE $2")
	assert.Contains(t, countSQL, "platform = $3")
	assert.Contains(t, countSQL, "status = $4")
	assert.Equal(t, []any{`%50\%\_off%`, `%50\%\_off%`, "TikTok", "published"}, countArgs)

	pageSQL, pageArgs, err := page.ToSql()
	require.NoError(t, err)
	assert.Contains(t, pageSQL, "SELECT id, title, platform")
	assert.Contains(t, pageSQL, "ORDER BY views DESC NULLS LAST, id ASC")
	assert.Contains(t, pageSQL, "LIMIT 5")
	assert.Contains(t, pageSQL, "OFFSET 5")
	assert.Equal(t, countArgs, pageArgs)
}

func TestListPlan_IgnoresUnknownSortAndFilter(t *testing.T) {
	query := pagination.Query{
		Page:      1,
		Limit:     20,
		SortBy:    "title; DROP TABLE content",
		SortOrder: pagination.SortOrderAscending,
		Filters:   map[string]string{"mood": "happy"},
	}

	count, page, err := contentList.build(query)
	require.NoError(t, err)

	countSQL, countArgs, err := count.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM content", countSQL)
	assert.Empty(t, countArgs)

	pageSQL, _, err := page.ToSql()
	require.NoError(t, err)
	assert.NotContains(t, pageSQL, "DROP")
	assert.Contains(t, pageSQL, "ORDER BY id ASC")
}

func TestListPlan_AscendingPutsMissingValuesFirst(t *testing.T) {
	query := pagination.Query{Page: 1, Limit: 10, SortBy: "lastLogin", SortOrder: pagination.SortOrderAscending}

	_, page, err := userList.build(query)
	require.NoError(t, err)

	pageSQL, _, err := page.ToSql()
	require.NoError(t, err)
	assert.Contains(t, pageSQL, "ORDER BY last_login ASC NULLS FIRST, id ASC")
}

func TestListPlan_DateRange(t *testing.T) {
	query := pagination.Query{
		Page:    1,
		Limit:   50,
		Filters: map[string]string{"startDate": "2024-01-05", "endDate": "2024-01-09"},
	}

	count, _, err := analyticsList.build(query)
	require.NoError(t, err)

	countSQL, countArgs, err := count.ToSql()
	require.NoError(t, err)
	assert.Contains(t, countSQL, "date <= $1")
	assert.Contains(t, countSQL, "date >= $2")
	assert.Equal(t, []any{
		time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	}, countArgs)
}

func TestListPlan_InvalidDate(t *testing.T) {
	query := pagination.Query{Page: 1, Limit: 50, Filters: map[string]string{"startDate": "last week"}}
	_, _, err := analyticsList.build(query)
	assert.ErrorIs(t, err, analytics.ErrInvalidDate)
}

func TestListPlan_ArrayMembershipAndFoldedEquality(t *testing.T) {
	query := pagination.Query{
		Page:    1,
		Limit:   12,
		Search:  "#fitness",
		Filters: map[string]string{"platform": "YouTube", "category": "lifestyle"},
	}

	count, _, err := trendList.build(query)
	require.NoError(t, err)

	countSQL, countArgs, err := count.ToSql()
	require.NoError(t, err)
	assert.Contains(t, countSQL, "array_to_string(hashtags, ' ') ILIKE $3")
	assert.Contains(t, countSQL, "LOWER(category) = LOWER($4)")
	assert.Contains(t, countSQL, "$5 = ANY(platforms)")
	assert.Equal(t, []any{"%#fitness%", "%#fitness%", "%#fitness%", "lifestyle", "YouTube"}, countArgs)
}
