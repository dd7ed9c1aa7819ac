package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/videra/data-server/internal/client"
	"github.com/videra/data-server/internal/pagination"
)

var (
	ErrInvalidOutput = errors.New("output format must be one of table, json or yaml")
	ErrInvalidFilter = errors.New("filters must use the key=value format")
	ErrUnknownFilter = errors.New("unknown filter")
)

// listFlags holds the pagination flags of a list command
type listFlags struct {
	page      int
	limit     int
	sortBy    []string
	sortOrder string
	search    string
	filters   []string
	all       bool
}

func (flags *listFlags) register(cmd *cobra.Command, defaults pagination.Defaults, filterKeys []string) {
	cmd.Flags().IntVar(&flags.page, "page", defaults.Page, "page to retrieve")
	cmd.Flags().IntVar(&flags.limit, "limit", defaults.Limit, "items per page")
	cmd.Flags().StringArrayVar(&flags.sortBy, "sort-by", []string{defaults.SortBy}, "sort key; repeating the same key flips the sort direction")
	cmd.Flags().StringVar(&flags.sortOrder, "sort-order", string(defaults.SortOrder), "sort direction (asc or desc)")
	cmd.Flags().StringVar(&flags.search, "search", "", "search term")
	cmd.Flags().StringArrayVar(&flags.filters, "filter", nil, "domain filter as key=value ("+strings.Join(filterKeys, ", ")+"); may be repeated")
	cmd.Flags().BoolVar(&flags.all, "all", false, "walk every page starting at --page")
}

// state builds the pagination state holder out of the flags.
// The page is applied last as every other change would not reset it on its own.
func (flags *listFlags) state(defaults pagination.Defaults, filterKeys []string) (*pagination.State, error) {
	state := pagination.NewState(defaults)

	order, err := pagination.ParseSortOrder(flags.sortOrder)
	if err != nil {
		return nil, err
	}
	state.SetSortOrder(order)
	for i, key := range flags.sortBy {
		if i == 0 {
			state.SetSortBy(key)
			continue
		}
		state.ToggleSort(key)
	}
	state.SetSearch(flags.search)

	for _, raw := range flags.filters {
		key, value, ok := strings.Cut(raw, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidFilter, raw)
		}
		if !contains(filterKeys, key) {
			return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownFilter, key, strings.Join(filterKeys, ", "))
		}
		state.SetFilter(key, value)
	}

	state.SetLimit(flags.limit)
	state.SetPage(flags.page)
	return state, nil
}

// listing describes how a list command fetches and renders its items
type listing[T any] struct {
	defaults pagination.Defaults
	filters  []string
	fetch    func(ctx context.Context, query pagination.Query) client.Result[*pagination.Page[T]]
	columns  []column[T]
}

// runList fetches the requested page (or every page from there on) and renders it.
// Pages are requested by the pagination state holder: the navigation controls report page changes to it and every
// change triggers a fetch of the new query.
func runList[T any](cmd *cobra.Command, root *rootFlags, flags *listFlags, resource listing[T]) error {
	state, err := flags.state(resource.defaults, resource.filters)
	if err != nil {
		return err
	}

	var (
		pages    []*pagination.Page[T]
		fetchErr error
	)
	fetch := func(query pagination.Query) {
		log.Debug().Str("query", query.Key()).Msg("fetching page")
		result := resource.fetch(cmd.Context(), query)
		if !result.Ok() {
			fetchErr = result.Err
			return
		}
		if result.Stale() {
			warnStale(cmd, result.Err)
		}
		pages = append(pages, result.Value)
	}
	state.Subscribe(fetch)

	fetch(state.Query())
	for flags.all && fetchErr == nil {
		controls := pagination.NewControls(pages[len(pages)-1].Pagination, state.SetPage)
		if controls == nil || !controls.Press(controls.Next) {
			break
		}
	}
	if fetchErr != nil {
		return fetchErr
	}

	last := pages[len(pages)-1]
	if !flags.all {
		return renderPage(cmd, root.output, last, resource.columns)
	}

	items := make([]T, 0, last.Pagination.TotalItems)
	for _, page := range pages {
		items = append(items, page.Items...)
	}
	return renderItems(cmd, root.output, items, resource.columns)
}

func warnStale(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: the API could not be reached, showing the last known data: %v\n", err)
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
