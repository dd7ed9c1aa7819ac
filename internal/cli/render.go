package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/videra/data-server/internal/api/schema"
	"github.com/videra/data-server/internal/pagination"
	"gopkg.in/yaml.v3"
)

// tabPadding is the minimum column padding for tabwriter output
const tabPadding = 2

var (
	styleCurrentPage = lipgloss.NewStyle().Bold(true).Reverse(true)
	styleDisabled    = lipgloss.NewStyle().Faint(true)
	styleMuted       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// column describes a single table column
type column[T any] struct {
	header string
	value  func(T) string
}

// renderPage writes a single page in the requested output format.
// Tables are followed by the navigation controls of the page.
func renderPage[T any](cmd *cobra.Command, output string, page *pagination.Page[T], columns []column[T]) error {
	switch output {
	case OutputJSON:
		return writeJSON(cmd.OutOrStdout(), schema.BuildListResponse(page))
	case OutputYAML:
		return writeYAML(cmd.OutOrStdout(), schema.BuildListResponse(page))
	}

	out := cmd.OutOrStdout()
	if err := writeTable(out, page.Items, columns); err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderControls(pagination.NewControls(page.Pagination, nil), page.Pagination))
	return nil
}

// renderItems writes a flat list of items in the requested output format
func renderItems[T any](cmd *cobra.Command, output string, items []T, columns []column[T]) error {
	switch output {
	case OutputJSON:
		return writeJSON(cmd.OutOrStdout(), items)
	case OutputYAML:
		return writeYAML(cmd.OutOrStdout(), items)
	}

	out := cmd.OutOrStdout()
	if err := writeTable(out, items, columns); err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, styleMuted.Render(fmt.Sprintf("%d items", len(items))))
	return nil
}

// renderValue writes a single value; tables are produced by the given function
func renderValue(cmd *cobra.Command, output string, value any, table func(w io.Writer) error) error {
	switch output {
	case OutputJSON:
		return writeJSON(cmd.OutOrStdout(), value)
	case OutputYAML:
		return writeYAML(cmd.OutOrStdout(), value)
	default:
		return table(cmd.OutOrStdout())
	}
}

func writeTable[T any](out io.Writer, items []T, columns []column[T]) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(out, "No items found.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)
	headers := make([]string, 0, len(columns))
	rulers := make([]string, 0, len(columns))
	for _, col := range columns {
		headers = append(headers, col.header)
		rulers = append(rulers, strings.Repeat("-", len(col.header)))
	}
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	fmt.Fprintln(w, strings.Join(rulers, "\t"))

	row := make([]string, len(columns))
	for _, item := range items {
		for i, col := range columns {
			row[i] = col.value(item)
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

// renderControls renders the navigation controls as a single line, e.g.
// « ‹ 1 … 4 [5] 6 … 10 › »  showing 41 to 50 of 100
func renderControls(controls *pagination.Controls, meta pagination.Metadata) string {
	if controls == nil {
		return styleMuted.Render(fmt.Sprintf("showing %d of %d", min(meta.TotalItems, meta.ItemsPerPage), meta.TotalItems))
	}

	button := func(label string, button pagination.Button) string {
		if button.Disabled {
			return styleDisabled.Render(label)
		}
		return label
	}

	parts := []string{button("«", controls.First), button("‹", controls.Previous)}
	for _, link := range controls.Pages {
		switch {
		case link.Ellipsis:
			parts = append(parts, "…")
		case link.Current:
			parts = append(parts, styleCurrentPage.Render("["+strconv.Itoa(link.Number)+"]"))
		default:
			parts = append(parts, strconv.Itoa(link.Number))
		}
	}
	parts = append(parts, button("›", controls.Next), button("»", controls.Last))

	summary := fmt.Sprintf("showing %d to %d of %d", controls.FromItem, controls.ToItem, controls.TotalItems)
	return strings.Join(parts, " ") + "  " + styleMuted.Render(summary)
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func writeYAML(out io.Writer, value any) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return err
	}
	return encoder.Close()
}
