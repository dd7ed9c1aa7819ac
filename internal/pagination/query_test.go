package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func orderPtr(o SortOrder) *SortOrder { return &o }

func TestBuild_FillsDefaults(t *testing.T) {
	query := Build(Intent{}, Defaults{Limit: 12, SortBy: "publishedAt"})

	assert.Equal(t, 1, query.Page)
	assert.Equal(t, 12, query.Limit)
	assert.Equal(t, "publishedAt", query.SortBy)
	assert.Equal(t, SortOrderDescending, query.SortOrder)
	assert.Empty(t, query.Search)
	assert.Nil(t, query.Filters)
}

func TestBuild_ClampsInvalidValues(t *testing.T) {
	tests := []struct {
		name      string
		intent    Intent
		defaults  Defaults
		wantPage  int
		wantLimit int
	}{
		{
			name:      "zero page",
			intent:    Intent{Page: intPtr(0)},
			defaults:  Defaults{Limit: 20},
			wantPage:  1,
			wantLimit: 20,
		},
		{
			name:      "negative page",
			intent:    Intent{Page: intPtr(-4)},
			defaults:  Defaults{Limit: 20},
			wantPage:  1,
			wantLimit: 20,
		},
		{
			name:      "negative limit falls back to default",
			intent:    Intent{Limit: intPtr(-5)},
			defaults:  Defaults{Limit: 50},
			wantPage:  1,
			wantLimit: 50,
		},
		{
			name:      "limit above max is clamped",
			intent:    Intent{Page: intPtr(3), Limit: intPtr(5000)},
			defaults:  Defaults{Limit: 20, MaxLimit: 100},
			wantPage:  3,
			wantLimit: 100,
		},
		{
			name:      "missing default limit",
			intent:    Intent{},
			defaults:  Defaults{},
			wantPage:  1,
			wantLimit: DefaultLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := Build(tt.intent, tt.defaults)
			assert.Equal(t, tt.wantPage, query.Page)
			assert.Equal(t, tt.wantLimit, query.Limit)
		})
	}
}

func TestBuild_NormalizesSearchSortAndFilters(t *testing.T) {
	query := Build(Intent{
		SortBy:    strPtr(" views "),
		SortOrder: orderPtr("ASC"),
		Search:    strPtr("  tiktok "),
		Filters: map[string]string{
			"platform": "Instagram",
			"status":   "all",
			"plan":     "  ",
		},
	}, Defaults{Limit: 20})

	assert.Equal(t, "views", query.SortBy)
	assert.Equal(t, SortOrderAscending, query.SortOrder)
	assert.Equal(t, "tiktok", query.Search)
	assert.Equal(t, map[string]string{"platform": "Instagram"}, query.Filters)
}

func TestBuild_InvalidSortOrderKeepsDefault(t *testing.T) {
	query := Build(Intent{SortOrder: orderPtr("sideways")}, Defaults{SortOrder: SortOrderAscending})
	assert.Equal(t, SortOrderAscending, query.SortOrder)
}

func TestParseSortOrder(t *testing.T) {
	order, err := ParseSortOrder("Desc")
	require.NoError(t, err)
	assert.Equal(t, SortOrderDescending, order)

	_, err = ParseSortOrder("random")
	assert.ErrorIs(t, err, ErrInvalidSortOrder)
}

func TestQuery_KeyIsCanonical(t *testing.T) {
	a := Query{Page: 2, Limit: 10, SortBy: "views", SortOrder: SortOrderAscending, Filters: map[string]string{"platform": "TikTok", "status": "published"}}
	b := Query{Page: 2, Limit: 10, SortBy: "views", SortOrder: SortOrderAscending, Filters: map[string]string{"status": "published", "platform": "TikTok"}}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), a.WithPage(3).Key())
	assert.Equal(t, "limit=10&page=2&platform=TikTok&sortBy=views&sortOrder=asc&status=published", a.Key())
}

func TestQuery_WithPageDoesNotShareFilters(t *testing.T) {
	original := Query{Page: 1, Limit: 10, Filters: map[string]string{"platform": "TikTok"}}
	next := original.WithPage(2)
	next.Filters["platform"] = "YouTube"

	assert.Equal(t, "TikTok", original.Filters["platform"])
	assert.Equal(t, 1, original.Page)
	assert.Equal(t, 10, next.Offset())
}

func TestQuery_OffsetSaturates(t *testing.T) {
	assert.Equal(t, 0, Query{Page: 0, Limit: 10}.Offset())
	assert.Equal(t, 0, Query{Page: 3, Limit: 0}.Offset())
	assert.Equal(t, 20, Query{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, math.MaxInt, Query{Page: math.MaxInt/2 + 1, Limit: 4}.Offset())
	assert.Equal(t, math.MaxInt, Query{Page: math.MaxInt, Limit: math.MaxInt}.Offset())
}
