package trend

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/videra/data-server/internal/pagination"
)

var (
	ErrMissingTopic      = errors.New("a topic name is required")
	ErrInvalidViralScore = errors.New("the viral score must be between 0 and 100")
)

// Topic represents a trending topic creators may pick up
type Topic struct {
	ID         string   `json:"id" yaml:"id"`
	Topic      string   `json:"topic" yaml:"topic"`
	Category   string   `json:"category" yaml:"category"`
	Growth     string   `json:"growth" yaml:"growth"`
	Posts      string   `json:"posts" yaml:"posts"`
	Engagement string   `json:"engagement" yaml:"engagement"`
	Platforms  []string `json:"platforms" yaml:"platforms"`
	Timeframe  string   `json:"timeframe" yaml:"timeframe"`
	Difficulty string   `json:"difficulty" yaml:"difficulty"`
	Hashtags   []string `json:"hashtags" yaml:"hashtags"`
	ViralScore int      `json:"viralScore" yaml:"viralScore"`
}

// Repository defines the trending topic repository API
type Repository interface {
	// List retrieves a page of trending topics matching the given query
	List(ctx context.Context, query pagination.Query) (*pagination.Page[*Topic], error)

	// GetByID retrieves a trending topic by its ID
	GetByID(ctx context.Context, id string) (*Topic, error)

	// Create creates a new trending topic
	Create(ctx context.Context, create *Create) (*Topic, error)
}

// Create is used to create a new trending topic
type Create struct {
	ID         string
	Topic      string
	Category   string
	Growth     string
	Posts      string
	Engagement string
	Platforms  []string
	Timeframe  string
	Difficulty string
	Hashtags   []string
	ViralScore int
}

// Build validates the create action and builds the resulting topic
func (create *Create) Build() (*Topic, error) {
	if strings.TrimSpace(create.Topic) == "" {
		return nil, ErrMissingTopic
	}
	if create.ViralScore < 0 || create.ViralScore > 100 {
		return nil, ErrInvalidViralScore
	}

	obj := &Topic{
		ID:         create.ID,
		Topic:      strings.TrimSpace(create.Topic),
		Category:   create.Category,
		Growth:     create.Growth,
		Posts:      create.Posts,
		Engagement: create.Engagement,
		Platforms:  append([]string{}, create.Platforms...),
		Timeframe:  create.Timeframe,
		Difficulty: create.Difficulty,
		Hashtags:   append([]string{}, create.Hashtags...),
		ViralScore: create.ViralScore,
	}
	if obj.ID == "" {
		obj.ID = uuid.NewString()
	}
	return obj, nil
}

// Filter names understood by the trending topic list
const (
	FilterPlatform  = "platform"
	FilterTimeframe = "timeframe"
	FilterCategory  = "category"
)

// Defaults are the query defaults of the trending topic list
var Defaults = pagination.Defaults{
	Page:      1,
	Limit:     12,
	MaxLimit:  100,
	SortBy:    "viralScore",
	SortOrder: pagination.SortOrderDescending,
}

// Schema describes how trending topics are searched, filtered and sorted
var Schema = pagination.Schema[*Topic]{
	SearchFields: []func(*Topic) string{
		func(obj *Topic) string { return obj.Topic },
		func(obj *Topic) string { return obj.Category },
		func(obj *Topic) string { return strings.Join(obj.Hashtags, " ") },
	},
	Filters: map[string]pagination.Matcher[*Topic]{
		FilterPlatform:  pagination.Contains(func(obj *Topic) []string { return obj.Platforms }),
		FilterTimeframe: pagination.Equals(func(obj *Topic) string { return obj.Timeframe }),
		FilterCategory:  pagination.EqualsFold(func(obj *Topic) string { return obj.Category }),
	},
	Sorts: map[string]pagination.Comparator[*Topic]{
		"viralScore": pagination.Ordered(func(obj *Topic) int { return obj.ViralScore }),
		"topic":      pagination.FoldedString(func(obj *Topic) string { return obj.Topic }),
	},
}

// Mock returns the trending topics the dashboard is seeded with on an empty storage
func Mock() []*Create {
	return []*Create{
		{
			ID:         "1",
			Topic:      "Morning Routines",
			Category:   "Lifestyle",
			Growth:     "+245%",
			Posts:      "1.2M",
			Engagement: "8.9%",
			Platforms:  []string{"TikTok", "Instagram", "YouTube"},
			Timeframe:  "24h",
			Difficulty: "Easy",
			Hashtags:   []string{"#morningroutine", "#productivity", "#selfcare"},
			ViralScore: 92,
		},
		{
			ID:         "2",
			Topic:      "Quick Workouts",
			Category:   "Fitness",
			Growth:     "+189%",
			Posts:      "856K",
			Engagement: "12.4%",
			Platforms:  []string{"TikTok", "Instagram"},
			Timeframe:  "12h",
			Difficulty: "Medium",
			Hashtags:   []string{"#quickworkout", "#fitness", "#homegym"},
			ViralScore: 88,
		},
		{
			ID:         "3",
			Topic:      "Healthy Recipes",
			Category:   "Food",
			Growth:     "+167%",
			Posts:      "2.1M",
			Engagement: "6.7%",
			Platforms:  []string{"Instagram", "YouTube", "TikTok"},
			Timeframe:  "6h",
			Difficulty: "Easy",
			Hashtags:   []string{"#healthyrecipes", "#cooking", "#nutrition"},
			ViralScore: 85,
		},
		{
			ID:         "4",
			Topic:      "Study Tips",
			Category:   "Education",
			Growth:     "+134%",
			Posts:      "445K",
			Engagement: "9.8%",
			Platforms:  []string{"TikTok", "YouTube"},
			Timeframe:  "3h",
			Difficulty: "Easy",
			Hashtags:   []string{"#studytips", "#education", "#productivity"},
			ViralScore: 82,
		},
		{
			ID:         "5",
			Topic:      "Minimalist Organization",
			Category:   "Lifestyle",
			Growth:     "+156%",
			Posts:      "678K",
			Engagement: "7.3%",
			Platforms:  []string{"Instagram", "TikTok"},
			Timeframe:  "8h",
			Difficulty: "Medium",
			Hashtags:   []string{"#organization", "#minimalism", "#decor"},
			ViralScore: 79,
		},
	}
}
