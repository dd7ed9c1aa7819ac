package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/videra/data-server/internal/client"
	"github.com/videra/data-server/internal/pagination"
	"github.com/videra/data-server/internal/trend"
)

var trendColumns = []column[*trend.Topic]{
	{header: "ID", value: func(obj *trend.Topic) string { return obj.ID }},
	{header: "Topic", value: func(obj *trend.Topic) string { return obj.Topic }},
	{header: "Category", value: func(obj *trend.Topic) string { return obj.Category }},
	{header: "Growth", value: func(obj *trend.Topic) string { return obj.Growth }},
	{header: "Platforms", value: func(obj *trend.Topic) string { return strings.Join(obj.Platforms, ", ") }},
	{header: "Timeframe", value: func(obj *trend.Topic) string { return obj.Timeframe }},
	{header: "Viral Score", value: func(obj *trend.Topic) string { return strconv.Itoa(obj.ViralScore) }},
}

func newTrendsCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Browse trending topics",
	}
	cmd.AddCommand(newTrendsListCmd(root))
	return cmd
}

func newTrendsListCmd(root *rootFlags) *cobra.Command {
	flags := &listFlags{}
	filters := trend.Schema.FilterKeys()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trending topics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := root.client()
			if err != nil {
				return err
			}
			defer api.Close()
			return runList(cmd, root, flags, listing[*trend.Topic]{
				defaults: trend.Defaults,
				filters:  filters,
				fetch: func(ctx context.Context, query pagination.Query) client.Result[*pagination.Page[*trend.Topic]] {
					return api.Trends(ctx, query)
				},
				columns: trendColumns,
			})
		},
	}
	flags.register(cmd, trend.Defaults, filters)
	return cmd
}
