package pagination

// windowDelta is the amount of pages shown on each side of the current page
const windowDelta = 2

// PageLink represents a single entry of a page window: either a page number or an ellipsis marker
type PageLink struct {
	Number   int
	Ellipsis bool
	Current  bool
}

// Window computes the page numbers to display around the current page.
// The first and the last page are always part of the window and the current page is surrounded by up to two pages
// on each side. Any pages hidden between them collapse into an ellipsis marker, even a single one.
func Window(current, total int) []PageLink {
	if total < 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	link := func(number int) PageLink {
		return PageLink{Number: number, Current: number == current}
	}

	links := []PageLink{link(1)}

	start := max(2, current-windowDelta)
	end := min(total-1, current+windowDelta)

	if start > 2 {
		links = append(links, PageLink{Ellipsis: true})
	}

	for i := start; i <= end; i++ {
		links = append(links, link(i))
	}

	if end < total-1 {
		links = append(links, PageLink{Ellipsis: true})
	}

	if total > 1 {
		links = append(links, link(total))
	}
	return links
}

// Button represents a navigation control
type Button struct {
	Target   int
	Disabled bool
}

// Controls represents the navigation controls of a paginated list.
// Controls hold no state of their own; every selection is reported to the page change callback.
type Controls struct {
	First    Button
	Previous Button
	Next     Button
	Last     Button
	Pages    []PageLink

	// FromItem and ToItem describe the 1-based range of visible items out of TotalItems
	FromItem   int
	ToItem     int
	TotalItems int

	onPageChange func(page int)
}

// NewControls builds the navigation controls for the given pagination metadata.
// It returns nil if there is nothing to navigate (a single page or less).
func NewControls(meta Metadata, onPageChange func(page int)) *Controls {
	if meta.TotalPages <= 1 {
		return nil
	}

	current := meta.CurrentPage
	first := current <= 1
	last := current >= meta.TotalPages

	limit := max(1, meta.ItemsPerPage)
	from, to := 0, 0
	if offset := (Query{Page: current, Limit: limit}).Offset(); offset < meta.TotalItems {
		from = offset + 1
		to = min(offset+limit, meta.TotalItems)
	}

	return &Controls{
		First:        Button{Target: 1, Disabled: first},
		Previous:     Button{Target: current - 1, Disabled: first},
		Next:         Button{Target: current + 1, Disabled: last},
		Last:         Button{Target: meta.TotalPages, Disabled: last},
		Pages:        Window(current, meta.TotalPages),
		FromItem:     from,
		ToItem:       to,
		TotalItems:   meta.TotalItems,
		onPageChange: onPageChange,
	}
}

// Press activates a navigation button; disabled buttons do nothing.
// It returns whether the page change callback was invoked.
func (controls *Controls) Press(button Button) bool {
	if button.Disabled {
		return false
	}
	return controls.Select(button.Target)
}

// Select reports the literal page number to the page change callback.
// It returns whether the callback was invoked.
func (controls *Controls) Select(page int) bool {
	if controls.onPageChange == nil {
		return false
	}
	controls.onPageChange(page)
	return true
}
