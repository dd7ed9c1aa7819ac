package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentState() *State {
	return NewState(Defaults{Limit: 12, MaxLimit: 100, SortBy: "publishedAt", SortOrder: SortOrderDescending})
}

func TestState_Defaults(t *testing.T) {
	state := newContentState()

	assert.Equal(t, 1, state.Page())
	assert.Equal(t, 12, state.Limit())
	assert.Equal(t, "publishedAt", state.SortBy())
	assert.Equal(t, SortOrderDescending, state.SortOrder())
	assert.Equal(t, FilterAll, state.Filter("platform"))
	assert.False(t, state.CanGoPrevious())
}

func TestState_SetPageClampsToOne(t *testing.T) {
	state := newContentState()
	state.SetPage(-3)
	assert.Equal(t, 1, state.Page())

	state.SetPage(42)
	assert.Equal(t, 42, state.Page(), "the state holder has no upper bound")
}

func TestState_Navigation(t *testing.T) {
	state := newContentState()

	state.NextPage()
	state.NextPage()
	assert.Equal(t, 3, state.Page())
	assert.True(t, state.CanGoPrevious())
	assert.False(t, state.CanGoNext(3))
	assert.True(t, state.CanGoNext(4))

	state.PreviousPage()
	assert.Equal(t, 2, state.Page())

	state.GoToFirst()
	state.PreviousPage()
	assert.Equal(t, 1, state.Page())

	state.GoToLast(7)
	assert.Equal(t, 7, state.Page())
}

func TestState_EveryMutationPublishesQuery(t *testing.T) {
	state := newContentState()

	var published []Query
	state.Subscribe(func(query Query) {
		published = append(published, query)
	})

	state.SetSearch("  routine ")
	state.SetFilter("platform", "TikTok")
	state.SetSortOrder(SortOrderAscending)
	state.SetLimit(24)
	state.NextPage()

	require.Len(t, published, 5)
	last := published[4]
	assert.Equal(t, 2, last.Page)
	assert.Equal(t, 24, last.Limit)
	assert.Equal(t, "routine", last.Search)
	assert.Equal(t, SortOrderAscending, last.SortOrder)
	assert.Equal(t, map[string]string{"platform": "TikTok"}, last.Filters)

	// earlier descriptors are not affected by later mutations
	assert.Equal(t, 1, published[0].Page)
	assert.Nil(t, published[0].Filters)
}

func TestState_SetFilterAllRemovesFilter(t *testing.T) {
	state := newContentState()
	state.SetFilter("platform", "YouTube")
	assert.Equal(t, "YouTube", state.Filter("platform"))

	state.SetFilter("platform", "all")
	assert.Equal(t, FilterAll, state.Filter("platform"))
	assert.Nil(t, state.Query().Filters)
}

func TestState_SetLimitRejectsNonPositive(t *testing.T) {
	state := newContentState()
	state.SetLimit(50)
	state.SetLimit(0)
	assert.Equal(t, 12, state.Limit())

	state.SetLimit(1000)
	assert.Equal(t, 100, state.Query().Limit)
}

func TestState_ToggleSort(t *testing.T) {
	state := newContentState()

	state.ToggleSort("publishedAt")
	assert.Equal(t, SortOrderAscending, state.SortOrder())

	state.ToggleSort("publishedAt")
	assert.Equal(t, SortOrderDescending, state.SortOrder())

	state.SetSortOrder(SortOrderAscending)
	state.ToggleSort("views")
	assert.Equal(t, "views", state.SortBy())
	assert.Equal(t, SortOrderDescending, state.SortOrder())
}

func TestState_Reset(t *testing.T) {
	state := newContentState()
	state.SetPage(4)
	state.SetSearch("x")
	state.SetSortBy("views")
	state.SetFilter("platform", "TikTok")

	state.Reset()
	assert.Equal(t, Build(Intent{}, Defaults{Limit: 12, MaxLimit: 100, SortBy: "publishedAt"}), state.Query())
}
