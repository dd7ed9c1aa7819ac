package content

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/videra/data-server/internal/pagination"
)

// Repository defines the content repository API
type Repository interface {
	// List retrieves a page of content items matching the given query
	List(ctx context.Context, query pagination.Query) (*pagination.Page[*Item], error)

	// GetByID retrieves a content item by its ID
	GetByID(ctx context.Context, id string) (*Item, error)

	// Create creates a new content item
	Create(ctx context.Context, create *Create) (*Item, error)

	// Update updates an existing content item
	Update(ctx context.Context, id string, update *Update) (*Item, error)

	// Delete deletes a content item by its ID
	Delete(ctx context.Context, id string) error
}

// Create is used to create a new content item.
// If ID is empty, a random one is generated; if EngagementRate is zero, it is computed from the counters.
type Create struct {
	ID             string
	Title          string
	Platform       string
	PublishedAt    time.Time
	Views          int64
	Likes          int64
	Shares         int64
	Comments       int64
	Thumbnail      string
	Status         Status
	Performance    Performance
	EngagementRate float64
}

// Validate checks whether the create action describes a valid content item
func (create *Create) Validate() error {
	if strings.TrimSpace(create.Title) == "" {
		return ErrMissingTitle
	}
	if strings.TrimSpace(create.Platform) == "" {
		return ErrMissingPlatform
	}
	if create.Status != "" && !create.Status.Valid() {
		return ErrInvalidStatus
	}
	if create.Performance != "" && !create.Performance.Valid() {
		return ErrInvalidPerformance
	}
	return nil
}

// Build validates the create action and builds the resulting content item
func (create *Create) Build() (*Item, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}

	obj := &Item{
		ID:             create.ID,
		Title:          strings.TrimSpace(create.Title),
		Platform:       strings.TrimSpace(create.Platform),
		PublishedAt:    create.PublishedAt.UTC(),
		Views:          create.Views,
		Likes:          create.Likes,
		Shares:         create.Shares,
		Comments:       create.Comments,
		Thumbnail:      create.Thumbnail,
		Status:         create.Status,
		Performance:    create.Performance,
		EngagementRate: create.EngagementRate,
	}
	if obj.ID == "" {
		obj.ID = uuid.NewString()
	}
	if obj.Status == "" {
		obj.Status = StatusDraft
	}
	if obj.Performance == "" {
		obj.Performance = PerformanceAverage
	}
	if obj.PublishedAt.IsZero() {
		obj.PublishedAt = time.Now().UTC()
	}
	if obj.EngagementRate == 0 {
		obj.EngagementRate = EngagementRate(obj.Views, obj.Likes, obj.Shares, obj.Comments)
	}
	return obj, nil
}

// Update is used to update an existing content item
type Update struct {
	Title          *string
	Platform       *string
	PublishedAt    *time.Time
	Views          *int64
	Likes          *int64
	Shares         *int64
	Comments       *int64
	Thumbnail      *string
	Status         *Status
	Performance    *Performance
	EngagementRate *float64
}

// Validate checks whether the update action keeps the content item valid
func (update *Update) Validate() error {
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return ErrMissingTitle
	}
	if update.Platform != nil && strings.TrimSpace(*update.Platform) == "" {
		return ErrMissingPlatform
	}
	if update.Status != nil && !update.Status.Valid() {
		return ErrInvalidStatus
	}
	if update.Performance != nil && !update.Performance.Valid() {
		return ErrInvalidPerformance
	}
	return nil
}

// Apply returns a copy of the given item with the update applied.
// The engagement rate is recomputed if a counter changed and no explicit rate was given.
func (update *Update) Apply(obj *Item) *Item {
	cpy := *obj
	if update.Title != nil {
		cpy.Title = strings.TrimSpace(*update.Title)
	}
	if update.Platform != nil {
		cpy.Platform = strings.TrimSpace(*update.Platform)
	}
	if update.PublishedAt != nil {
		cpy.PublishedAt = update.PublishedAt.UTC()
	}
	if update.Views != nil {
		cpy.Views = *update.Views
	}
	if update.Likes != nil {
		cpy.Likes = *update.Likes
	}
	if update.Shares != nil {
		cpy.Shares = *update.Shares
	}
	if update.Comments != nil {
		cpy.Comments = *update.Comments
	}
	if update.Thumbnail != nil {
		cpy.Thumbnail = *update.Thumbnail
	}
	if update.Status != nil {
		cpy.Status = *update.Status
	}
	if update.Performance != nil {
		cpy.Performance = *update.Performance
	}
	switch {
	case update.EngagementRate != nil:
		cpy.EngagementRate = *update.EngagementRate
	case update.Views != nil || update.Likes != nil || update.Shares != nil || update.Comments != nil:
		cpy.EngagementRate = EngagementRate(cpy.Views, cpy.Likes, cpy.Shares, cpy.Comments)
	}
	return &cpy
}
