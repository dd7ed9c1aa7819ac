package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/videra/data-server/internal/pagination"
)

func mockItems(t *testing.T) []*Item {
	t.Helper()
	items := make([]*Item, 0, 6)
	for _, create := range Mock() {
		obj, err := create.Build()
		require.NoError(t, err)
		items = append(items, obj)
	}
	return items
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("scheduled")
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, status)

	_, err = ParseStatus("archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestParsePerformance(t *testing.T) {
	performance, err := ParsePerformance("viral")
	require.NoError(t, err)
	assert.Equal(t, PerformanceViral, performance)

	_, err = ParsePerformance("meh")
	assert.ErrorIs(t, err, ErrInvalidPerformance)
}

func TestEngagementRate(t *testing.T) {
	assert.Equal(t, 0.0, EngagementRate(0, 10, 10, 10))
	assert.Equal(t, 10.0, EngagementRate(1000, 50, 25, 25))
	assert.Equal(t, 3.3, EngagementRate(3000, 100, 0, 0))
}

func TestCreate_Build(t *testing.T) {
	obj, err := (&Create{Title: "  Launch day ", Platform: "TikTok", Views: 1000, Likes: 100}).Build()
	require.NoError(t, err)

	assert.NotEmpty(t, obj.ID)
	assert.Equal(t, "Launch day", obj.Title)
	assert.Equal(t, StatusDraft, obj.Status)
	assert.Equal(t, PerformanceAverage, obj.Performance)
	assert.Equal(t, 10.0, obj.EngagementRate)
	assert.False(t, obj.PublishedAt.IsZero())
}

func TestCreate_Validate(t *testing.T) {
	tests := []struct {
		name   string
		create Create
		err    error
	}{
		{name: "missing title", create: Create{Platform: "TikTok"}, err: ErrMissingTitle},
		{name: "missing platform", create: Create{Title: "x"}, err: ErrMissingPlatform},
		{name: "bad status", create: Create{Title: "x", Platform: "TikTok", Status: "gone"}, err: ErrInvalidStatus},
		{name: "bad performance", create: Create{Title: "x", Platform: "TikTok", Performance: "meh"}, err: ErrInvalidPerformance},
		{name: "valid", create: Create{Title: "x", Platform: "TikTok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.create.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestUpdate_Apply(t *testing.T) {
	original := mockItems(t)[0]
	views := int64(300000)
	status := StatusFailed

	updated := (&Update{Views: &views, Status: &status}).Apply(original)

	assert.Equal(t, int64(245000), original.Views, "the original item must stay untouched")
	assert.Equal(t, views, updated.Views)
	assert.Equal(t, StatusFailed, updated.Status)
	assert.Equal(t, EngagementRate(views, original.Likes, original.Shares, original.Comments), updated.EngagementRate)
}

func TestUpdate_ApplyKeepsExplicitRate(t *testing.T) {
	original := mockItems(t)[0]
	views := int64(1)
	rate := 42.0

	updated := (&Update{Views: &views, EngagementRate: &rate}).Apply(original)
	assert.Equal(t, rate, updated.EngagementRate)
}

func TestSchema_PlatformFilter(t *testing.T) {
	query := pagination.Build(pagination.Intent{
		Filters: map[string]string{FilterPlatform: "Instagram"},
	}, Defaults)

	page := pagination.Paginate(mockItems(t), query, Schema)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "2", page.Items[0].ID)
	assert.Equal(t, "5", page.Items[1].ID)
}

func TestSchema_DefaultSortIsNewestFirst(t *testing.T) {
	page := pagination.Paginate(mockItems(t), pagination.Build(pagination.Intent{}, Defaults), Schema)
	require.Len(t, page.Items, 6)
	for i := 1; i < len(page.Items); i++ {
		assert.True(t, page.Items[i-1].PublishedAt.After(page.Items[i].PublishedAt))
	}
	assert.Equal(t, "publishedAt", page.Meta.SortBy)
}

func TestSchema_SortByEngagementRate(t *testing.T) {
	order := pagination.SortOrderAscending
	sortBy := "engagementRate"
	query := pagination.Build(pagination.Intent{SortBy: &sortBy, SortOrder: &order}, Defaults)

	page := pagination.Paginate(mockItems(t), query, Schema)
	require.NotEmpty(t, page.Items)
	assert.Equal(t, "3", page.Items[0].ID)
	assert.Equal(t, "4", page.Items[len(page.Items)-1].ID)
}

func TestSchema_SearchMatchesPlatform(t *testing.T) {
	search := "youtube"
	page := pagination.Paginate(mockItems(t), pagination.Build(pagination.Intent{Search: &search}, Defaults), Schema)
	assert.Len(t, page.Items, 2)
}

func TestMock_PublishedAtIsUTC(t *testing.T) {
	for _, create := range Mock() {
		assert.Equal(t, time.UTC, create.PublishedAt.Location())
	}
}
