package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/videra/data-server/internal/analytics"
	"github.com/videra/data-server/internal/client"
	"github.com/videra/data-server/internal/pagination"
)

var dataPointColumns = []column[*analytics.DataPoint]{
	{header: "ID", value: func(obj *analytics.DataPoint) string { return obj.ID }},
	{header: "Date", value: func(obj *analytics.DataPoint) string { return obj.Date }},
	{header: "Platform", value: func(obj *analytics.DataPoint) string { return obj.Platform }},
	{header: "Views", value: func(obj *analytics.DataPoint) string { return strconv.FormatInt(obj.Views, 10) }},
	{header: "Engagement", value: func(obj *analytics.DataPoint) string { return strconv.FormatInt(obj.Engagement, 10) }},
	{header: "Content", value: func(obj *analytics.DataPoint) string { return obj.ContentID }},
}

func newAnalyticsCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Inspect views and engagement over time",
	}
	cmd.AddCommand(
		newAnalyticsListCmd(root),
		newAnalyticsSummaryCmd(root),
		newAnalyticsChartCmd(root),
	)
	return cmd
}

func newAnalyticsListCmd(root *rootFlags) *cobra.Command {
	flags := &listFlags{}
	filters := analytics.Schema.FilterKeys()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List raw analytics data points",
		Example: `  # List the YouTube data points of the first week of January
  videractl analytics list --filter platform=YouTube --filter startDate=2024-01-01 --filter endDate=2024-01-07`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := root.client()
			if err != nil {
				return err
			}
			defer api.Close()
			return runList(cmd, root, flags, listing[*analytics.DataPoint]{
				defaults: analytics.Defaults,
				filters:  filters,
				fetch: func(ctx context.Context, query pagination.Query) client.Result[*pagination.Page[*analytics.DataPoint]] {
					return api.Analytics(ctx, query)
				},
				columns: dataPointColumns,
			})
		},
	}
	flags.register(cmd, analytics.Defaults, filters)
	return cmd
}

func newAnalyticsSummaryCmd(root *rootFlags) *cobra.Command {
	var (
		period   string
		platform string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the aggregated performance of a reporting period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := analytics.ParsePeriod(period)
			if err != nil {
				return err
			}
			api, err := root.client()
			if err != nil {
				return err
			}
			defer api.Close()

			result := api.Summary(cmd.Context(), parsed, platform)
			summary, err := unwrapWarn(cmd, result)
			if err != nil {
				return err
			}

			return renderValue(cmd, root.output, summary, func(out io.Writer) error {
				w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)
				fmt.Fprintf(w, "Period:\t%s\n", summary.Period)
				if summary.From != "" {
					fmt.Fprintf(w, "Range:\t%s to %s\n", summary.From, summary.To)
				}
				fmt.Fprintf(w, "Total views:\t%d\n", summary.TotalViews)
				fmt.Fprintf(w, "Total engagement:\t%d\n", summary.TotalEngagement)
				fmt.Fprintf(w, "Engagement rate:\t%.1f%%\n", summary.EngagementRate)
				fmt.Fprintf(w, "Growth rate:\t%+.1f%%\n", summary.GrowthRate)
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&period, "period", string(analytics.DefaultPeriod), "reporting period (24h, 7d, 30d or 90d)")
	cmd.Flags().StringVar(&platform, "platform", pagination.FilterAll, "restrict the summary to a single platform")
	return cmd
}

func newAnalyticsChartCmd(root *rootFlags) *cobra.Command {
	var (
		chartType string
		period    string
		platform  string
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Show a chart series of a reporting period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsedType, err := analytics.ParseChartType(chartType)
			if err != nil {
				return err
			}
			parsedPeriod, err := analytics.ParsePeriod(period)
			if err != nil {
				return err
			}
			api, err := root.client()
			if err != nil {
				return err
			}
			defer api.Close()

			result := api.Chart(cmd.Context(), parsedType, parsedPeriod, platform)
			series, err := unwrapWarn(cmd, result)
			if err != nil {
				return err
			}

			return renderValue(cmd, root.output, series, func(out io.Writer) error {
				return writeTable(out, series, []column[*analytics.ChartPoint]{
					{header: "Label", value: func(obj *analytics.ChartPoint) string { return obj.Label }},
					{header: "Views", value: func(obj *analytics.ChartPoint) string { return strconv.FormatInt(obj.Views, 10) }},
					{header: "Engagement", value: func(obj *analytics.ChartPoint) string { return strconv.FormatInt(obj.Engagement, 10) }},
				})
			})
		},
	}

	cmd.Flags().StringVar(&chartType, "type", string(analytics.ChartDaily), "chart type (daily or platforms)")
	cmd.Flags().StringVar(&period, "period", string(analytics.DefaultPeriod), "reporting period (24h, 7d, 30d or 90d)")
	cmd.Flags().StringVar(&platform, "platform", pagination.FilterAll, "restrict the chart to a single platform")
	return cmd
}

// unwrapWarn unwraps a result, accepting stale values with a warning
func unwrapWarn[T any](cmd *cobra.Command, result client.Result[T]) (T, error) {
	if !result.Ok() {
		var zero T
		return zero, result.Err
	}
	if result.Stale() {
		warnStale(cmd, result.Err)
	}
	return result.Value, nil
}
