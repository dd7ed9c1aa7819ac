package content

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidStatus      = errors.New("invalid content status")
	ErrInvalidPerformance = errors.New("invalid content performance")
	ErrMissingTitle       = errors.New("a content title is required")
	ErrMissingPlatform    = errors.New("a content platform is required")
)

// Status represents the publishing state of a content item
type Status string

const (
	StatusPublished Status = "published"
	StatusScheduled Status = "scheduled"
	StatusDraft     Status = "draft"
	StatusFailed    Status = "failed"
)

// Statuses lists every known content status
var Statuses = []Status{StatusPublished, StatusScheduled, StatusDraft, StatusFailed}

// Valid returns whether the status is one of the known content statuses
func (status Status) Valid() bool {
	for _, known := range Statuses {
		if status == known {
			return true
		}
	}
	return false
}

// ParseStatus validates a raw status value
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return status, nil
}

// Performance represents the performance bucket a content item landed in
type Performance string

const (
	PerformanceViral   Performance = "viral"
	PerformanceGood    Performance = "good"
	PerformanceAverage Performance = "average"
)

// Performances lists every known performance bucket
var Performances = []Performance{PerformanceViral, PerformanceGood, PerformanceAverage}

// Valid returns whether the performance is one of the known performance buckets
func (performance Performance) Valid() bool {
	for _, known := range Performances {
		if performance == known {
			return true
		}
	}
	return false
}

// ParsePerformance validates a raw performance value
func ParsePerformance(raw string) (Performance, error) {
	performance := Performance(raw)
	if !performance.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPerformance, raw)
	}
	return performance, nil
}

// Item represents a single piece of content published (or about to be published) by a creator
type Item struct {
	ID             string      `json:"id" yaml:"id"`
	Title          string      `json:"title" yaml:"title"`
	Platform       string      `json:"platform" yaml:"platform"`
	PublishedAt    time.Time   `json:"publishedAt" yaml:"publishedAt"`
	Views          int64       `json:"views" yaml:"views"`
	Likes          int64       `json:"likes" yaml:"likes"`
	Shares         int64       `json:"shares" yaml:"shares"`
	Comments       int64       `json:"comments" yaml:"comments"`
	Thumbnail      string      `json:"thumbnail" yaml:"thumbnail"`
	Status         Status      `json:"status" yaml:"status"`
	Performance    Performance `json:"performance" yaml:"performance"`
	EngagementRate float64     `json:"engagementRate" yaml:"engagementRate"`
}

// EngagementRate computes the share of interactions (likes, shares and comments) in percent of the views
func EngagementRate(views, likes, shares, comments int64) float64 {
	if views <= 0 {
		return 0
	}
	rate := float64(likes+shares+comments) / float64(views) * 100
	return float64(int64(rate*10+0.5)) / 10
}
