package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the layout every data point date uses
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate      = errors.New("dates must use the YYYY-MM-DD format")
	ErrInvalidPeriod    = errors.New("period must be one of 24h, 7d, 30d or 90d")
	ErrInvalidChartType = errors.New("chart type must be one of daily or platforms")
	ErrMissingPlatform  = errors.New("a platform is required")
)

// DataPoint represents the aggregated views and engagement of a single day and platform
type DataPoint struct {
	ID         string `json:"id" yaml:"id"`
	Date       string `json:"date" yaml:"date"`
	Views      int64  `json:"views" yaml:"views"`
	Engagement int64  `json:"engagement" yaml:"engagement"`
	Platform   string `json:"platform" yaml:"platform"`
	ContentID  string `json:"contentId,omitempty" yaml:"contentId,omitempty"`
}

// Day parses the date of the data point
func (point *DataPoint) Day() (time.Time, error) {
	return ParseDate(point.Date)
}

// ParseDate parses a YYYY-MM-DD date
func ParseDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return parsed, nil
}

// Period represents a reporting period ending at the most recent data point
type Period string

const (
	Period24Hours Period = "24h"
	Period7Days   Period = "7d"
	Period30Days  Period = "30d"
	Period90Days  Period = "90d"
)

// DefaultPeriod is used whenever no period is requested explicitly
const DefaultPeriod = Period30Days

// Periods lists every known reporting period
var Periods = []Period{Period24Hours, Period7Days, Period30Days, Period90Days}

// ParsePeriod validates a raw period value; an empty value yields the default period
func ParsePeriod(raw string) (Period, error) {
	if raw == "" {
		return DefaultPeriod, nil
	}
	for _, known := range Periods {
		if Period(raw) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidPeriod, raw)
}

// Days returns the amount of days the period spans
func (period Period) Days() int {
	switch period {
	case Period24Hours:
		return 1
	case Period7Days:
		return 7
	case Period90Days:
		return 90
	default:
		return 30
	}
}

// Bounds returns the first and last date (inclusive) of the period ending at the given anchor date
func (period Period) Bounds(anchor time.Time) (time.Time, time.Time) {
	return anchor.AddDate(0, 0, -(period.Days() - 1)), anchor
}

// Create is used to create a new data point
type Create struct {
	ID         string
	Date       string
	Views      int64
	Engagement int64
	Platform   string
	ContentID  string
}

// Validate checks whether the create action describes a valid data point
func (create *Create) Validate() error {
	if _, err := ParseDate(create.Date); err != nil {
		return err
	}
	if create.Platform == "" {
		return ErrMissingPlatform
	}
	return nil
}

// Build validates the create action and builds the resulting data point
func (create *Create) Build() (*DataPoint, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}
	obj := &DataPoint{
		ID:         create.ID,
		Date:       create.Date,
		Views:      create.Views,
		Engagement: create.Engagement,
		Platform:   create.Platform,
		ContentID:  create.ContentID,
	}
	if obj.ID == "" {
		obj.ID = uuid.NewString()
	}
	return obj, nil
}
