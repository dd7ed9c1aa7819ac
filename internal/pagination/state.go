package pagination

import (
	"strings"
	"sync"
)

// State holds the mutable pagination state of a list view.
// Every mutation re-derives the query descriptor and hands it to all subscribed listeners; consumers are expected to
// treat that descriptor as the single trigger for re-fetching or re-paginating.
type State struct {
	mtx sync.Mutex

	initial Defaults

	page      int
	limit     int
	sortBy    string
	sortOrder SortOrder
	search    string
	filters   map[string]string

	listeners []func(Query)
}

// NewState creates a new pagination state starting at the given defaults
func NewState(initial Defaults) *State {
	state := &State{initial: initial.normalized()}
	state.reset()
	return state
}

// Page returns the current page
func (state *State) Page() int {
	state.mtx.Lock()
	defer state.mtx.Unlock()
	return state.page
}

// Limit returns the current amount of items per page
func (state *State) Limit() int {
	state.mtx.Lock()
	defer state.mtx.Unlock()
	return state.limit
}

// SortBy returns the current sort key
func (state *State) SortBy() string {
	state.mtx.Lock()
	defer state.mtx.Unlock()
	return state.sortBy
}

// SortOrder returns the current sort direction
func (state *State) SortOrder() SortOrder {
	state.mtx.Lock()
	defer state.mtx.Unlock()
	return state.sortOrder
}

// Search returns the current (untrimmed) search term
func (state *State) Search() string {
	state.mtx.Lock()
	defer state.mtx.Unlock()
	return state.search
}

// Filter returns the current value of a domain filter; unset filters report the 'all' sentinel
func (state *State) Filter(key string) string {
	state.mtx.Lock()
	defer state.mtx.Unlock()
	if val, ok := state.filters[key]; ok {
		return val
	}
	return FilterAll
}

// Query derives the query descriptor out of the current state
func (state *State) Query() Query {
	state.mtx.Lock()
	defer state.mtx.Unlock()
	return state.query()
}

// Subscribe registers a listener that receives the new query descriptor after every mutation
func (state *State) Subscribe(listener func(Query)) {
	state.mtx.Lock()
	defer state.mtx.Unlock()
	state.listeners = append(state.listeners, listener)
}

// SetPage jumps to the given page.
// Values below 1 are clamped to 1; there is no upper bound as the state does not know the total amount of pages.
func (state *State) SetPage(page int) {
	state.mutate(func() {
		if page < 1 {
			page = 1
		}
		state.page = page
	})
}

// SetLimit changes the amount of items per page.
// Non-positive values restore the initial limit.
func (state *State) SetLimit(limit int) {
	state.mutate(func() {
		if limit < 1 {
			limit = state.initial.Limit
		}
		state.limit = limit
	})
}

// SetSortBy changes the sort key
func (state *State) SetSortBy(sortBy string) {
	state.mutate(func() {
		state.sortBy = sortBy
	})
}

// SetSortOrder changes the sort direction
func (state *State) SetSortOrder(order SortOrder) {
	state.mutate(func() {
		state.sortOrder = order
	})
}

// ToggleSort sorts by the given key, flipping the direction if the collection is already sorted descending by it
func (state *State) ToggleSort(sortBy string) {
	state.mutate(func() {
		if state.sortBy == sortBy && state.sortOrder == SortOrderDescending {
			state.sortOrder = SortOrderAscending
		} else {
			state.sortOrder = SortOrderDescending
		}
		state.sortBy = sortBy
	})
}

// SetSearch changes the search term
func (state *State) SetSearch(search string) {
	state.mutate(func() {
		state.search = search
	})
}

// SetFilter changes a domain filter; the 'all' sentinel or an empty value removes it
func (state *State) SetFilter(key, value string) {
	state.mutate(func() {
		value = strings.TrimSpace(value)
		if value == "" || strings.EqualFold(value, FilterAll) {
			delete(state.filters, key)
			return
		}
		state.filters[key] = value
	})
}

// Reset restores the initial state
func (state *State) Reset() {
	state.mutate(state.reset)
}

// NextPage advances to the next page
func (state *State) NextPage() {
	state.mutate(func() {
		state.page++
	})
}

// PreviousPage goes back to the previous page, never going below page 1
func (state *State) PreviousPage() {
	state.mutate(func() {
		if state.page > 1 {
			state.page--
		}
	})
}

// GoToFirst jumps to the first page
func (state *State) GoToFirst() {
	state.SetPage(1)
}

// GoToLast jumps to the last page; the caller has to provide the total amount of pages
func (state *State) GoToLast(totalPages int) {
	state.SetPage(totalPages)
}

// CanGoNext returns whether there is a page after the current one
func (state *State) CanGoNext(totalPages int) bool {
	return state.Page() < totalPages
}

// CanGoPrevious returns whether there is a page before the current one
func (state *State) CanGoPrevious() bool {
	return state.Page() > 1
}

func (state *State) mutate(action func()) {
	state.mtx.Lock()
	action()
	query := state.query()
	listeners := make([]func(Query), len(state.listeners))
	copy(listeners, state.listeners)
	state.mtx.Unlock()

	for _, listener := range listeners {
		listener(query)
	}
}

func (state *State) reset() {
	state.page = state.initial.Page
	state.limit = state.initial.Limit
	state.sortBy = state.initial.SortBy
	state.sortOrder = state.initial.SortOrder
	state.search = ""
	state.filters = make(map[string]string)
}

func (state *State) query() Query {
	page := state.page
	limit := state.limit
	sortBy := state.sortBy
	sortOrder := state.sortOrder
	search := state.search
	return Build(Intent{
		Page:      &page,
		Limit:     &limit,
		SortBy:    &sortBy,
		SortOrder: &sortOrder,
		Search:    &search,
		Filters:   state.filters,
	}, state.initial)
}
