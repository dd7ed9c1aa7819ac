package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Summary represents the aggregated performance over a reporting period
type Summary struct {
	Period          Period  `json:"period" yaml:"period"`
	From            string  `json:"from,omitempty" yaml:"from,omitempty"`
	To              string  `json:"to,omitempty" yaml:"to,omitempty"`
	TotalViews      int64   `json:"totalViews" yaml:"totalViews"`
	TotalEngagement int64   `json:"totalEngagement" yaml:"totalEngagement"`
	EngagementRate  float64 `json:"engagementRate" yaml:"engagementRate"`
	GrowthRate      float64 `json:"growthRate" yaml:"growthRate"`
}

// ChartType represents the kind of chart series to build
type ChartType string

const (
	ChartDaily     ChartType = "daily"
	ChartPlatforms ChartType = "platforms"
)

// ParseChartType validates a raw chart type
func ParseChartType(raw string) (ChartType, error) {
	switch ChartType(raw) {
	case ChartDaily, ChartPlatforms:
		return ChartType(raw), nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidChartType, raw)
	}
}

// ChartPoint represents a single point of a chart series.
// Label is a date for daily charts and a platform name for platform charts.
type ChartPoint struct {
	Label      string `json:"label" yaml:"label"`
	Views      int64  `json:"views" yaml:"views"`
	Engagement int64  `json:"engagement" yaml:"engagement"`
}

// Summarize aggregates the given data points over a period anchored at the newest data point.
// The growth rate compares the views of the period with the views of the period right before it.
func Summarize(points []*DataPoint, period Period) (*Summary, error) {
	summary := &Summary{Period: period}

	anchor, ok, err := newest(points)
	if err != nil || !ok {
		return summary, err
	}
	from, to := period.Bounds(anchor)
	previousFrom, previousTo := period.Bounds(from.AddDate(0, 0, -1))
	summary.From = from.Format(DateLayout)
	summary.To = to.Format(DateLayout)

	var previousViews int64
	for _, point := range points {
		day, err := point.Day()
		if err != nil {
			return nil, err
		}
		switch {
		case within(day, from, to):
			summary.TotalViews += point.Views
			summary.TotalEngagement += point.Engagement
		case within(day, previousFrom, previousTo):
			previousViews += point.Views
		}
	}

	summary.EngagementRate = percentage(summary.TotalEngagement, summary.TotalViews)
	if previousViews > 0 {
		summary.GrowthRate = percentage(summary.TotalViews-previousViews, previousViews)
	}
	return summary, nil
}

// Chart builds a chart series out of the data points of a period anchored at the newest data point.
// Daily charts are ordered by date, platform charts by views (descending).
func Chart(points []*DataPoint, chartType ChartType, period Period) ([]*ChartPoint, error) {
	anchor, ok, err := newest(points)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*ChartPoint{}, nil
	}
	from, to := period.Bounds(anchor)

	buckets := make(map[string]*ChartPoint)
	for _, point := range points {
		day, err := point.Day()
		if err != nil {
			return nil, err
		}
		if !within(day, from, to) {
			continue
		}

		label := point.Date
		if chartType == ChartPlatforms {
			label = point.Platform
		}
		bucket, ok := buckets[label]
		if !ok {
			bucket = &ChartPoint{Label: label}
			buckets[label] = bucket
		}
		bucket.Views += point.Views
		bucket.Engagement += point.Engagement
	}

	series := make([]*ChartPoint, 0, len(buckets))
	for _, bucket := range buckets {
		series = append(series, bucket)
	}
	sort.Slice(series, func(i, j int) bool {
		if chartType == ChartPlatforms && series[i].Views != series[j].Views {
			return series[i].Views > series[j].Views
		}
		return series[i].Label < series[j].Label
	})
	return series, nil
}

func newest(points []*DataPoint) (time.Time, bool, error) {
	var anchor time.Time
	found := false
	for _, point := range points {
		day, err := point.Day()
		if err != nil {
			return time.Time{}, false, err
		}
		if !found || day.After(anchor) {
			anchor = day
			found = true
		}
	}
	return anchor, found, nil
}

func within(day, from, to time.Time) bool {
	return !day.Before(from) && !day.After(to)
}

func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
