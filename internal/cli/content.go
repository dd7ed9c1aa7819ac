package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/videra/data-server/internal/client"
	"github.com/videra/data-server/internal/content"
	"github.com/videra/data-server/internal/pagination"
)

var contentColumns = []column[*content.Item]{
	{header: "ID", value: func(obj *content.Item) string { return obj.ID }},
	{header: "Title", value: func(obj *content.Item) string { return obj.Title }},
	{header: "Platform", value: func(obj *content.Item) string { return obj.Platform }},
	{header: "Published", value: func(obj *content.Item) string { return obj.PublishedAt.Format("2006-01-02") }},
	{header: "Views", value: func(obj *content.Item) string { return strconv.FormatInt(obj.Views, 10) }},
	{header: "Engagement", value: func(obj *content.Item) string { return strconv.FormatFloat(obj.EngagementRate, 'f', 1, 64) + "%" }},
	{header: "Status", value: func(obj *content.Item) string { return string(obj.Status) }},
	{header: "Performance", value: func(obj *content.Item) string { return string(obj.Performance) }},
}

func newContentCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Browse published content",
	}
	cmd.AddCommand(newContentListCmd(root))
	return cmd
}

func newContentListCmd(root *rootFlags) *cobra.Command {
	flags := &listFlags{}
	filters := content.Schema.FilterKeys()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List content items",
		Example: `  # List the most viewed content items
  videractl content list --sort-by views --sort-order desc

  # Repeating a sort key flips its direction
  videractl content list --sort-by views --sort-by views

  # List viral TikTok content as JSON
  videractl content list --filter platform=TikTok --filter performance=viral -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := root.client()
			if err != nil {
				return err
			}
			defer api.Close()
			return runList(cmd, root, flags, listing[*content.Item]{
				defaults: content.Defaults,
				filters:  filters,
				fetch: func(ctx context.Context, query pagination.Query) client.Result[*pagination.Page[*content.Item]] {
					return api.Content(ctx, query)
				},
				columns: contentColumns,
			})
		},
	}
	flags.register(cmd, content.Defaults, filters)
	return cmd
}
